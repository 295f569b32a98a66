package watcher

import "github.com/bitcoin-tales/talesd/pkg/walletservice"

const (
	CloseSignal EventType = iota
	TransactionPending
	TransactionConfirmed
	TransactionUnknown
)

type EventType int

func (et EventType) String() string {
	switch et {
	case CloseSignal:
		return "CloseSignal"
	case TransactionPending:
		return "TransactionPending"
	case TransactionConfirmed:
		return "TransactionConfirmed"
	case TransactionUnknown:
		return "TransactionUnknown"
	default:
		return "Unknown"
	}
}

type CloseEvent struct{}

func (q CloseEvent) Type() EventType {
	return CloseSignal
}

// TransactionEvent reports the outcome of one poll of a watched transaction.
type TransactionEvent struct {
	Txid      string
	EventType EventType
	// Entry is set when the transaction was found in the mempool.
	Entry *walletservice.MempoolEntry
	// Confirmation fields are set when EventType is TransactionConfirmed.
	BlockHeight   uint64
	BlockHash     string
	Confirmations uint64
	BlockTime     int64
	// Source is "mempool" when the mempool entry itself reported the
	// confirmed flag, "lookup" when the entry left the mempool and the
	// confirmed-transaction lookup succeeded.
	Source string
	// Err is set when EventType is TransactionUnknown: the entry left the
	// mempool but the confirmed-transaction lookup failed too.
	Err error
}

func (t TransactionEvent) Type() EventType {
	return t.EventType
}
