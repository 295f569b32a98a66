package domain

import (
	"time"

	"github.com/google/uuid"
)

// TxStatus represents the different statuses that a tracked transaction can
// assume.
type TxStatus struct {
	Code int
}

// Confirmation holds the block inclusion details of a confirmed transaction.
type Confirmation struct {
	BlockHeight   uint64
	BlockHash     string
	Confirmations uint64
	BlockTime     int64
	// Source records whether the confirmation came from the mempool entry
	// itself or from the secondary lookup after the entry left the mempool.
	Source string
}

// Transaction is the data structure representing a spend submitted to the
// wallet service. Txid is assigned by the service on submission and never
// reused; FromWallet, ToAddress, Amount and Message are immutable once set.
type Transaction struct {
	Id            string
	Txid          string
	FromWallet    string
	ToAddress     string
	Amount        uint64
	Message       string
	Status        TxStatus
	Confirmation  *Confirmation
	SubmittedAt   int64
	ConfirmedAt   int64
}

// NewTransaction returns a pending transaction for the given submission
// outcome.
func NewTransaction(
	txid, fromWallet, toAddress string, amount uint64, message string,
) *Transaction {
	return &Transaction{
		Id:          uuid.New().String(),
		Txid:        txid,
		FromWallet:  fromWallet,
		ToAddress:   toAddress,
		Amount:      amount,
		Message:     message,
		Status:      TxStatus{Code: TxStatusCodePending},
		SubmittedAt: time.Now().Unix(),
	}
}

// Confirm brings the transaction from the Pending to the Confirmed status
// with the given block inclusion details. Calling it on an already confirmed
// transaction is a no-op returning true, so that late poll results never
// alter the recorded confirmation.
func (t *Transaction) Confirm(confirmation Confirmation) (bool, error) {
	if t.IsConfirmed() {
		return true, nil
	}

	if len(confirmation.Source) <= 0 {
		return false, ErrTxMissingConfirmation
	}

	t.Status.Code = TxStatusCodeConfirmed
	t.Confirmation = &confirmation
	t.ConfirmedAt = time.Now().Unix()
	return true, nil
}

// IsPending returns whether the transaction is in Pending status.
func (t *Transaction) IsPending() bool {
	return t.Status.Code == TxStatusCodePending
}

// IsConfirmed returns whether the transaction is in Confirmed status.
func (t *Transaction) IsConfirmed() bool {
	return t.Status.Code == TxStatusCodeConfirmed
}
