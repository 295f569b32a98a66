package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

const menuPricesKey = "menu_prices"

// menuPrices is the persisted shape of the menu price overrides.
type menuPrices struct {
	Prices map[string]uint64
}

type ledgerRepositoryImpl struct {
	store *badgerhold.Store
}

func newLedgerRepositoryImpl(store *badgerhold.Store) domain.LedgerRepository {
	return ledgerRepositoryImpl{store: store}
}

func (l ledgerRepositoryImpl) GetOrCreateWallet(
	ctx context.Context, role string,
) (*domain.Wallet, error) {
	wallet, err := l.getWallet(role)
	if err != nil {
		if !errors.Is(err, domain.ErrWalletNotFound) {
			return nil, err
		}
		wallet = domain.NewWallet(role)
		if err := l.store.Insert(role, *wallet); err != nil {
			return nil, err
		}
	}
	return wallet, nil
}

func (l ledgerRepositoryImpl) GetWallet(
	ctx context.Context, role string,
) (*domain.Wallet, error) {
	return l.getWallet(role)
}

func (l ledgerRepositoryImpl) UpdateWallet(
	ctx context.Context,
	role string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	currentWallet, err := l.GetOrCreateWallet(ctx, role)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(currentWallet)
	if err != nil {
		return err
	}

	return l.store.Upsert(role, *updatedWallet)
}

func (l ledgerRepositoryImpl) GetMenuPrices(
	ctx context.Context,
) (map[string]uint64, error) {
	var prices menuPrices
	if err := l.store.Get(menuPricesKey, &prices); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return map[string]uint64{}, nil
		}
		return nil, err
	}
	return prices.Prices, nil
}

func (l ledgerRepositoryImpl) SetMenuPrices(
	ctx context.Context, prices map[string]uint64,
) error {
	return l.store.Upsert(menuPricesKey, menuPrices{Prices: prices})
}

func (l ledgerRepositoryImpl) ClearAll(ctx context.Context) error {
	if err := l.store.DeleteMatching(
		&domain.Wallet{}, &badgerhold.Query{},
	); err != nil {
		return err
	}
	return l.store.DeleteMatching(&menuPrices{}, &badgerhold.Query{})
}

func (l ledgerRepositoryImpl) getWallet(role string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := l.store.Get(role, &wallet); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}
