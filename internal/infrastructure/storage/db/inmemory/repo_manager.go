package inmemory

import (
	"context"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
	"github.com/bitcoin-tales/talesd/internal/core/ports"
)

type repoManager struct {
	ledgerRepo domain.LedgerRepository
	txRepo     domain.TransactionRepository
}

// NewRepoManager returns repositories backed by in-memory maps. Nothing
// survives a restart, which makes it a fit for tests and ephemeral runs.
func NewRepoManager() ports.RepoManager {
	return &repoManager{
		ledgerRepo: newLedgerRepositoryImpl(),
		txRepo:     newTransactionRepositoryImpl(),
	}
}

func (d *repoManager) LedgerRepository() domain.LedgerRepository {
	return d.ledgerRepo
}

func (d *repoManager) TransactionRepository() domain.TransactionRepository {
	return d.txRepo
}

func (d *repoManager) ClearAll(ctx context.Context) error {
	if err := d.ledgerRepo.ClearAll(ctx); err != nil {
		return err
	}
	return d.txRepo.ClearAll(ctx)
}

func (d *repoManager) Close() {}
