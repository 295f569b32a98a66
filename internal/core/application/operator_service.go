package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"
	"golang.org/x/sync/errgroup"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
	"github.com/bitcoin-tales/talesd/internal/core/ports"
	"github.com/bitcoin-tales/talesd/pkg/walletservice"
)

// OperatorService covers everything around the tracker: wallet bootstrap,
// cached balances and their refresh, mining passthrough, transaction
// history and the full reset.
type OperatorService interface {
	// Setup provisions both demo wallets and their receiving addresses on
	// the wallet service, persisting the identifiers in the ledger. It is
	// idempotent: already provisioned wallets are left untouched.
	Setup(ctx context.Context) error
	// GetBalances returns the cached balances of both parties.
	GetBalances(ctx context.Context) (*BalanceInfo, error)
	// RefreshBalances fetches both balances from the wallet service and
	// persists them.
	RefreshBalances(ctx context.Context) (*BalanceInfo, error)
	// Mine triggers the mining simulation towards the miner address and
	// refreshes the miner's balance afterwards.
	Mine(ctx context.Context, blocks int) error
	// GetHistory returns the whole transaction history, oldest first.
	GetHistory(ctx context.Context) ([]domain.Transaction, error)
	// Reset wipes the whole ledger back to its first-run state.
	Reset(ctx context.Context) error
}

type operatorService struct {
	repoManager ports.RepoManager
	walletSvc   walletservice.Service
}

// NewOperatorService ...
func NewOperatorService(
	repoManager ports.RepoManager, walletSvc walletservice.Service,
) OperatorService {
	return &operatorService{
		repoManager: repoManager,
		walletSvc:   walletSvc,
	}
}

func (o *operatorService) Setup(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, role := range []string{
		domain.WalletRoleMiner, domain.WalletRoleMerchant,
	} {
		role := role
		g.Go(func() error {
			return o.provisionWallet(gctx, role)
		})
	}

	return g.Wait()
}

func (o *operatorService) provisionWallet(
	ctx context.Context, role string,
) error {
	ledgerRepo := o.repoManager.LedgerRepository()

	wallet, err := ledgerRepo.GetOrCreateWallet(ctx, role)
	if err != nil {
		return err
	}
	if wallet.IsProvisioned() {
		log.Debugf("wallet %s already provisioned", role)
		return nil
	}

	name := wallet.Name
	if len(name) <= 0 {
		name, err = o.walletSvc.CreateWallet(role)
		if err != nil {
			return fmt.Errorf("creating %s wallet: %w", role, err)
		}
	}

	label := fmt.Sprintf("%s-%s", role, randstr.Hex(4))
	address, err := o.walletSvc.CreateAddress(name, label)
	if err != nil {
		return fmt.Errorf("creating %s address: %w", role, err)
	}

	if err := ledgerRepo.UpdateWallet(
		ctx, role,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			w.Name = name
			w.Address = address
			return w, nil
		},
	); err != nil {
		return err
	}

	log.Infof("provisioned %s wallet %s with address %s", role, name, address)
	return nil
}

func (o *operatorService) GetBalances(
	ctx context.Context,
) (*BalanceInfo, error) {
	ledgerRepo := o.repoManager.LedgerRepository()

	miner, err := ledgerRepo.GetOrCreateWallet(ctx, domain.WalletRoleMiner)
	if err != nil {
		return nil, err
	}
	merchant, err := ledgerRepo.GetOrCreateWallet(ctx, domain.WalletRoleMerchant)
	if err != nil {
		return nil, err
	}

	return &BalanceInfo{
		MinerBalance:    miner.Balance,
		MerchantBalance: merchant.Balance,
	}, nil
}

func (o *operatorService) RefreshBalances(
	ctx context.Context,
) (*BalanceInfo, error) {
	for _, role := range []string{
		domain.WalletRoleMiner, domain.WalletRoleMerchant,
	} {
		if err := o.refreshBalance(ctx, role); err != nil {
			return nil, err
		}
	}
	return o.GetBalances(ctx)
}

func (o *operatorService) refreshBalance(
	ctx context.Context, role string,
) error {
	ledgerRepo := o.repoManager.LedgerRepository()

	wallet, err := ledgerRepo.GetWallet(ctx, role)
	if err != nil {
		return err
	}
	if !wallet.IsProvisioned() {
		return domain.ErrWalletNotFound
	}

	balance, err := o.walletSvc.GetBalance(wallet.Name)
	if err != nil {
		return fmt.Errorf("refreshing %s balance: %w", role, err)
	}

	return ledgerRepo.UpdateWallet(
		ctx, role,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			w.Balance = balance
			return w, nil
		},
	)
}

func (o *operatorService) Mine(ctx context.Context, blocks int) error {
	if blocks <= 0 {
		return fmt.Errorf("blocks must be positive, got %d", blocks)
	}

	miner, err := o.repoManager.LedgerRepository().GetWallet(
		ctx, domain.WalletRoleMiner,
	)
	if err != nil {
		return err
	}
	if !miner.IsProvisioned() {
		return domain.ErrWalletNotFound
	}

	if err := o.walletSvc.Mine(miner.Name, miner.Address, blocks); err != nil {
		return err
	}

	log.Infof("mined %d blocks to %s", blocks, miner.Address)

	return o.refreshBalance(ctx, domain.WalletRoleMiner)
}

func (o *operatorService) GetHistory(
	ctx context.Context,
) ([]domain.Transaction, error) {
	return o.repoManager.TransactionRepository().GetAllTransactions(ctx)
}

func (o *operatorService) Reset(ctx context.Context) error {
	if err := o.repoManager.ClearAll(ctx); err != nil {
		return err
	}
	log.Info("ledger reset to first-run state")
	return nil
}
