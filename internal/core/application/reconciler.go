package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
	"github.com/bitcoin-tales/talesd/internal/core/ports"
	"github.com/bitcoin-tales/talesd/pkg/walletservice"
)

// BalanceReconciler applies the outcome of a confirmed transaction to both
// parties' cached balances, exactly once. Idempotence is inherited from the
// tracker's terminal-once guarantee, no dedup ledger is kept here.
type BalanceReconciler interface {
	Reconcile(ctx context.Context, tx *domain.Transaction) error
}

type balanceReconciler struct {
	repoManager ports.RepoManager
	walletSvc   walletservice.Service
}

// NewBalanceReconciler ...
func NewBalanceReconciler(
	repoManager ports.RepoManager, walletSvc walletservice.Service,
) BalanceReconciler {
	return &balanceReconciler{
		repoManager: repoManager,
		walletSvc:   walletSvc,
	}
}

// Reconcile subtracts the confirmed amount from the payer's cached balance
// and refreshes the payee's balance from the wallet service. A local
// addition on the payee side would be wrong because of network fees the
// tracker does not compute.
func (r *balanceReconciler) Reconcile(
	ctx context.Context, tx *domain.Transaction,
) error {
	if tx == nil || !tx.IsConfirmed() {
		return domain.ErrTxNotConfirmed
	}

	ledgerRepo := r.repoManager.LedgerRepository()

	if err := ledgerRepo.UpdateWallet(
		ctx, domain.WalletRoleMiner,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			if w.Name != tx.FromWallet {
				return nil, fmt.Errorf(
					"payer wallet mismatch: ledger has %s, tx was sent from %s",
					w.Name, tx.FromWallet,
				)
			}
			if w.Balance < tx.Amount {
				w.Balance = 0
				return w, nil
			}
			w.Balance -= tx.Amount
			return w, nil
		},
	); err != nil {
		return fmt.Errorf("updating payer balance: %w", err)
	}

	log.Debugf("subtracted %d sats from payer balance", tx.Amount)

	// best effort: a failed refresh leaves the payee's cached balance
	// stale, the next explicit refresh fixes it
	if err := r.refreshPayeeBalance(ctx); err != nil {
		log.WithError(err).Warn("trying to refresh payee balance")
	}

	return nil
}

func (r *balanceReconciler) refreshPayeeBalance(ctx context.Context) error {
	ledgerRepo := r.repoManager.LedgerRepository()

	merchant, err := ledgerRepo.GetWallet(ctx, domain.WalletRoleMerchant)
	if err != nil {
		return err
	}

	balance, err := r.walletSvc.GetBalance(merchant.Name)
	if err != nil {
		return err
	}

	return ledgerRepo.UpdateWallet(
		ctx, domain.WalletRoleMerchant,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			w.Balance = balance
			return w, nil
		},
	)
}
