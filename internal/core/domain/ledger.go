package domain

// Wallet is one of the two demo parties as recorded in the local ledger.
// Role is the ledger key, Name is the identifier assigned by the wallet
// service, Balance is the locally cached balance in satoshis.
//
// Balance is mutated only by balance reconciliation or by an explicit
// refresh from the wallet service, never speculatively on submission.
type Wallet struct {
	Role    string
	Name    string
	Address string
	Balance uint64
}

// NewWallet returns an empty ledger entry for the given role.
func NewWallet(role string) *Wallet {
	return &Wallet{Role: role}
}

// IsProvisioned returns whether the wallet has been created on the wallet
// service and owns a receiving address.
func (w *Wallet) IsProvisioned() bool {
	return len(w.Name) > 0 && len(w.Address) > 0
}
