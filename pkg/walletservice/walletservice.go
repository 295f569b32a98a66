package walletservice

// MempoolEntry is a broadcast transaction as reported by the wallet
// service's mempool endpoint.
type MempoolEntry struct {
	Txid       string `json:"txid"`
	FromWallet string `json:"from_wallet"`
	ToAddress  string `json:"to_address"`
	Amount     uint64 `json:"amount"`
	Message    string `json:"message"`
	Confirmed  bool   `json:"confirmed"`
}

// ConfirmedTx is a transaction already included in a block, as reported by
// the wallet service's tx endpoint.
type ConfirmedTx struct {
	Txid          string  `json:"txid"`
	Address       string  `json:"address"`
	Amount        float64 `json:"amount"`
	Fee           float64 `json:"fee"`
	Category      string  `json:"category"`
	BlockHeight   uint64  `json:"blockheight"`
	BlockHash     string  `json:"blockhash"`
	Confirmations uint64  `json:"confirmations"`
	BlockTime     int64   `json:"blocktime"`
}

// Service is the representation of the remote wallet/mining service. All
// methods are single-shot, retry policy belongs to callers.
type Service interface {
	// CreateWallet creates a named wallet and returns its identifier.
	CreateWallet(name string) (string, error)
	// CreateAddress derives a new receiving address for the given wallet.
	CreateAddress(walletName, label string) (string, error)
	// GetBalance returns the wallet balance in satoshis.
	GetBalance(walletName string) (uint64, error)
	// SendTransaction submits a spend and returns the assigned txid.
	// Rejections are returned as *SubmissionError.
	SendTransaction(
		fromWallet, toAddress string, amount uint64, message string,
	) (string, error)
	// GetMempoolEntry returns the mempool entry for the given txid, or
	// ErrTxNotInMempool if the service reports it gone from the mempool.
	GetMempoolEntry(walletName, txid string) (*MempoolEntry, error)
	// GetConfirmedTransaction looks up a transaction already included in a
	// block, or ErrTxNotFound.
	GetConfirmedTransaction(walletName, txid string) (*ConfirmedTx, error)
	// Mine triggers the mining simulation for the given number of blocks.
	Mine(walletName, address string, blocks int) error
}
