package domain

import "context"

// LedgerRepository is the persistence boundary for the demo's wallets and
// menu price overrides. Entries survive restarts; ClearAll brings the store
// back to its first-run state.
type LedgerRepository interface {
	// GetOrCreateWallet returns the wallet for the given role, creating an
	// empty entry if none exists yet.
	GetOrCreateWallet(ctx context.Context, role string) (*Wallet, error)
	// GetWallet returns the wallet for the given role or ErrWalletNotFound.
	GetWallet(ctx context.Context, role string) (*Wallet, error)
	// UpdateWallet reads the wallet for the given role, applies updateFn
	// and persists the result.
	UpdateWallet(
		ctx context.Context,
		role string,
		updateFn func(w *Wallet) (*Wallet, error),
	) error
	// GetMenuPrices returns the persisted price overrides by item id.
	GetMenuPrices(ctx context.Context) (map[string]uint64, error)
	// SetMenuPrices replaces the persisted price overrides.
	SetMenuPrices(ctx context.Context, prices map[string]uint64) error
	// ClearAll removes every managed entry.
	ClearAll(ctx context.Context) error
}

// TransactionRepository is the persistence boundary for the append-only
// transaction history.
type TransactionRepository interface {
	// AddTransaction appends a transaction to the history.
	AddTransaction(ctx context.Context, tx *Transaction) error
	// UpdateTransaction reads the transaction with the given txid, applies
	// updateFn and persists the result.
	UpdateTransaction(
		ctx context.Context,
		txid string,
		updateFn func(tx *Transaction) (*Transaction, error),
	) error
	// GetTransactionByTxid returns the history record for the given txid or
	// ErrTxNotFound.
	GetTransactionByTxid(ctx context.Context, txid string) (*Transaction, error)
	// GetAllTransactions returns the whole history, oldest first.
	GetAllTransactions(ctx context.Context) ([]Transaction, error)
	// ClearAll removes the whole history.
	ClearAll(ctx context.Context) error
}
