package inmemory

import (
	"context"
	"sync"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

type ledgerRepositoryImpl struct {
	wallets    map[string]*domain.Wallet
	menuPrices map[string]uint64
	lock       *sync.RWMutex
}

func newLedgerRepositoryImpl() domain.LedgerRepository {
	return &ledgerRepositoryImpl{
		wallets:    map[string]*domain.Wallet{},
		menuPrices: map[string]uint64{},
		lock:       &sync.RWMutex{},
	}
}

func (l *ledgerRepositoryImpl) GetOrCreateWallet(
	_ context.Context, role string,
) (*domain.Wallet, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.getOrCreateWallet(role), nil
}

func (l *ledgerRepositoryImpl) GetWallet(
	_ context.Context, role string,
) (*domain.Wallet, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	wallet, ok := l.wallets[role]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	copied := *wallet
	return &copied, nil
}

func (l *ledgerRepositoryImpl) UpdateWallet(
	_ context.Context,
	role string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	currentWallet := l.getOrCreateWallet(role)

	updatedWallet, err := updateFn(currentWallet)
	if err != nil {
		return err
	}

	l.wallets[role] = updatedWallet
	return nil
}

func (l *ledgerRepositoryImpl) GetMenuPrices(
	_ context.Context,
) (map[string]uint64, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	prices := make(map[string]uint64, len(l.menuPrices))
	for id, price := range l.menuPrices {
		prices[id] = price
	}
	return prices, nil
}

func (l *ledgerRepositoryImpl) SetMenuPrices(
	_ context.Context, prices map[string]uint64,
) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.menuPrices = make(map[string]uint64, len(prices))
	for id, price := range prices {
		l.menuPrices[id] = price
	}
	return nil
}

func (l *ledgerRepositoryImpl) ClearAll(_ context.Context) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.wallets = map[string]*domain.Wallet{}
	l.menuPrices = map[string]uint64{}
	return nil
}

func (l *ledgerRepositoryImpl) getOrCreateWallet(role string) *domain.Wallet {
	wallet, ok := l.wallets[role]
	if !ok {
		wallet = domain.NewWallet(role)
		l.wallets[role] = wallet
	}
	copied := *wallet
	return &copied
}
