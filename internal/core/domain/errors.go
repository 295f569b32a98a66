package domain

import "errors"

var (
	// ErrTxAlreadyActive is thrown when submitting a spend while another
	// transaction is still being tracked.
	ErrTxAlreadyActive = errors.New("another transaction is already being tracked")
	// ErrNoActiveTx is thrown when asking for the active transaction while
	// none is being tracked.
	ErrNoActiveTx = errors.New("no transaction is being tracked")
	// ErrTxNotConfirmed is thrown when reconciling a transaction that has
	// not reached the confirmed status.
	ErrTxNotConfirmed = errors.New("transaction is not confirmed")
	// ErrTxMissingConfirmation ...
	ErrTxMissingConfirmation = errors.New("confirmation details must not be null")
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found in ledger")
	// ErrTxNotFound ...
	ErrTxNotFound = errors.New("transaction not found in ledger")
	// ErrUnknownMenuItem ...
	ErrUnknownMenuItem = errors.New("unknown menu item")
	// ErrInsufficientBalance is thrown before submission when the cached
	// payer balance cannot cover the requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
