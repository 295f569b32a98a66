package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

func TestNewTransaction(t *testing.T) {
	tx := newPendingTx()

	require.NotEmpty(t, tx.Id)
	require.Equal(t, "aabbccdd", tx.Txid)
	require.True(t, tx.IsPending())
	require.False(t, tx.IsConfirmed())
	require.Nil(t, tx.Confirmation)
	require.NotEmpty(t, tx.SubmittedAt)
}

func TestTransactionConfirm(t *testing.T) {
	tests := []struct {
		name string
		tx   *domain.Transaction
	}{
		{
			name: "with_tx_pending",
			tx:   newPendingTx(),
		},
		{
			name: "with_tx_confirmed",
			tx:   newConfirmedTx(),
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.tx.Confirm(domain.Confirmation{
				BlockHeight:   150,
				BlockHash:     "00000000000000000007aabb",
				Confirmations: 1,
				BlockTime:     1700000000,
				Source:        domain.ConfirmationSourceLookup,
			})
			require.NoError(t, err)
			require.True(t, ok)

			require.True(t, tt.tx.IsConfirmed())
			require.NotNil(t, tt.tx.Confirmation)
			require.NotEmpty(t, tt.tx.ConfirmedAt)
		})
	}
}

func TestTransactionConfirmIsMonotonic(t *testing.T) {
	tx := newConfirmedTx()
	firstConfirmation := *tx.Confirmation

	// a stale confirmation observed later must not overwrite the first one
	ok, err := tx.Confirm(domain.Confirmation{
		BlockHeight: 9999,
		Source:      domain.ConfirmationSourceMempool,
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, firstConfirmation, *tx.Confirmation)
}

func TestFailingTransactionConfirm(t *testing.T) {
	tx := newPendingTx()

	ok, err := tx.Confirm(domain.Confirmation{BlockHeight: 150})
	require.EqualError(t, err, domain.ErrTxMissingConfirmation.Error())
	require.False(t, ok)
	require.True(t, tx.IsPending())
}

func newPendingTx() *domain.Transaction {
	return domain.NewTransaction(
		"aabbccdd", "mike", "bcrt1qmary", 20000, "buying Mango Salad",
	)
}

func newConfirmedTx() *domain.Transaction {
	tx := newPendingTx()
	tx.Confirm(domain.Confirmation{
		BlockHeight:   150,
		BlockHash:     "00000000000000000007aabb",
		Confirmations: 1,
		BlockTime:     1700000000,
		Source:        domain.ConfirmationSourceMempool,
	})
	return tx
}
