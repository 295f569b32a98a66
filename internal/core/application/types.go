package application

import "github.com/bitcoin-tales/talesd/internal/core/domain"

const (
	// StateIdle means no transaction is being tracked.
	StateIdle TrackerState = iota
	// StatePolling means the active transaction is being polled against the
	// wallet service's mempool.
	StatePolling
	// StateConfirmed is terminal: the active transaction got confirmed and
	// balances have been reconciled.
	StateConfirmed
	// StateUnknown is a non-terminal failure: the transaction left the
	// mempool but the confirmed-transaction lookup failed too. Polling is
	// halted, only a manual resubmission or dismissal moves on.
	StateUnknown
	// StateTimedOut is reached only when a poll attempt cap is configured
	// and exhausted before a terminal signal arrived.
	StateTimedOut
)

// TrackerState is the single authoritative state of the lifecycle tracker.
type TrackerState int

func (s TrackerState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StatePolling:
		return "POLLING"
	case StateConfirmed:
		return "CONFIRMED"
	case StateUnknown:
		return "UNKNOWN"
	case StateTimedOut:
		return "TIMED_OUT"
	default:
		return "INVALID"
	}
}

// IsTerminal returns whether the state admits a new submission.
func (s TrackerState) IsTerminal() bool {
	return s == StateConfirmed || s == StateUnknown || s == StateTimedOut
}

// TxSnapshot is a point-in-time view of the tracked transaction handed to
// the presentation layer.
type TxSnapshot struct {
	State       TrackerState
	Transaction domain.Transaction
	// Warning carries the user-visible message of an Unknown or TimedOut
	// state, empty otherwise.
	Warning string
}

// LifecycleEvent is published to subscribers whenever the tracker applies a
// state transition or observes a fresh poll of the active transaction.
type LifecycleEvent struct {
	State       TrackerState
	Transaction domain.Transaction
	Warning     string
}

// BalanceInfo pairs the two parties' cached balances.
type BalanceInfo struct {
	MinerBalance    uint64
	MerchantBalance uint64
}
