package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
	"github.com/bitcoin-tales/talesd/internal/core/ports"
)

type repoManager struct {
	store *badgerhold.Store

	ledgerRepo domain.LedgerRepository
	txRepo     domain.TransactionRepository
}

// NewRepoManager opens (or creates if not existing) the badger store on disk
// and returns the repositories backed by it. It expects a base data dir and
// an optional logger.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	return &repoManager{
		store:      store,
		ledgerRepo: newLedgerRepositoryImpl(store),
		txRepo:     newTransactionRepositoryImpl(store),
	}, nil
}

func (d *repoManager) LedgerRepository() domain.LedgerRepository {
	return d.ledgerRepo
}

func (d *repoManager) TransactionRepository() domain.TransactionRepository {
	return d.txRepo
}

// ClearAll drops every key of the underlying store in one operation,
// leaving it as on first run.
func (d *repoManager) ClearAll(_ context.Context) error {
	return d.store.Badger().DropAll()
}

func (d *repoManager) Close() {
	d.store.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	if _, err := buff.Write(data); err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
