package walletservice

import (
	"errors"
	"fmt"
)

var (
	// ErrTxNotInMempool is returned when the mempool endpoint answers 404,
	// meaning the transaction left the mempool.
	ErrTxNotInMempool = errors.New("transaction not in mempool")
	// ErrTxNotFound is returned when the confirmed-transaction lookup fails
	// to find the given txid.
	ErrTxNotFound = errors.New("transaction not found")
)

// SubmissionError wraps a spend rejection (insufficient funds, bad address,
// transport failure). It is never retried automatically.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission rejected: %s", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
