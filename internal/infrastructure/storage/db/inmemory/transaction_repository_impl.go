package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

type transactionRepositoryImpl struct {
	transactions map[string]*domain.Transaction
	lock         *sync.RWMutex
}

func newTransactionRepositoryImpl() domain.TransactionRepository {
	return &transactionRepositoryImpl{
		transactions: map[string]*domain.Transaction{},
		lock:         &sync.RWMutex{},
	}
}

func (t *transactionRepositoryImpl) AddTransaction(
	_ context.Context, tx *domain.Transaction,
) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	copied := *tx
	t.transactions[tx.Txid] = &copied
	return nil
}

func (t *transactionRepositoryImpl) UpdateTransaction(
	_ context.Context,
	txid string,
	updateFn func(tx *domain.Transaction) (*domain.Transaction, error),
) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	currentTx, ok := t.transactions[txid]
	if !ok {
		return domain.ErrTxNotFound
	}

	copied := *currentTx
	updatedTx, err := updateFn(&copied)
	if err != nil {
		return err
	}

	t.transactions[txid] = updatedTx
	return nil
}

func (t *transactionRepositoryImpl) GetTransactionByTxid(
	_ context.Context, txid string,
) (*domain.Transaction, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	tx, ok := t.transactions[txid]
	if !ok {
		return nil, domain.ErrTxNotFound
	}
	copied := *tx
	return &copied, nil
}

func (t *transactionRepositoryImpl) GetAllTransactions(
	_ context.Context,
) ([]domain.Transaction, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	txs := make([]domain.Transaction, 0, len(t.transactions))
	for _, tx := range t.transactions {
		txs = append(txs, *tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].SubmittedAt < txs[j].SubmittedAt
	})
	return txs, nil
}

func (t *transactionRepositoryImpl) ClearAll(_ context.Context) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.transactions = map[string]*domain.Transaction{}
	return nil
}
