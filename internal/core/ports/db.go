package ports

import (
	"context"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

// RepoManager gives access to every repository backed by the same store and
// to store-wide operations.
type RepoManager interface {
	LedgerRepository() domain.LedgerRepository
	TransactionRepository() domain.TransactionRepository

	// ClearAll wipes every managed entry of every repository, leaving the
	// store as on first run.
	ClearAll(ctx context.Context) error

	Close()
}
