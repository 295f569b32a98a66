package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

type transactionRepositoryImpl struct {
	store *badgerhold.Store
}

func newTransactionRepositoryImpl(
	store *badgerhold.Store,
) domain.TransactionRepository {
	return transactionRepositoryImpl{store: store}
}

func (t transactionRepositoryImpl) AddTransaction(
	ctx context.Context, tx *domain.Transaction,
) error {
	return t.store.Insert(tx.Txid, *tx)
}

func (t transactionRepositoryImpl) UpdateTransaction(
	ctx context.Context,
	txid string,
	updateFn func(tx *domain.Transaction) (*domain.Transaction, error),
) error {
	currentTx, err := t.GetTransactionByTxid(ctx, txid)
	if err != nil {
		return err
	}

	updatedTx, err := updateFn(currentTx)
	if err != nil {
		return err
	}

	return t.store.Update(txid, *updatedTx)
}

func (t transactionRepositoryImpl) GetTransactionByTxid(
	ctx context.Context, txid string,
) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := t.store.Get(txid, &tx); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTxNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (t transactionRepositoryImpl) GetAllTransactions(
	ctx context.Context,
) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	query := (&badgerhold.Query{}).SortBy("SubmittedAt")
	if err := t.store.Find(&txs, query); err != nil {
		return nil, err
	}
	return txs, nil
}

func (t transactionRepositoryImpl) ClearAll(ctx context.Context) error {
	return t.store.DeleteMatching(&domain.Transaction{}, &badgerhold.Query{})
}
