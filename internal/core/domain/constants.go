package domain

const (
	// TxStatusCodePending is the status of a submitted transaction still
	// waiting to be included in a block.
	TxStatusCodePending = iota
	// TxStatusCodeConfirmed is the status of a transaction included in a
	// block. The status is monotonic, a confirmed transaction never goes
	// back to pending.
	TxStatusCodeConfirmed
)

const (
	// ConfirmationSourceMempool marks a confirmation observed through the
	// mempool entry's confirmed flag.
	ConfirmationSourceMempool = "mempool"
	// ConfirmationSourceLookup marks a confirmation observed through the
	// confirmed-transaction lookup after the entry left the mempool.
	ConfirmationSourceLookup = "lookup"
)

const (
	// WalletRoleMiner identifies the payer wallet of the demo.
	WalletRoleMiner = "miner"
	// WalletRoleMerchant identifies the payee wallet of the demo.
	WalletRoleMerchant = "merchant"
)
