package application

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
	"github.com/bitcoin-tales/talesd/internal/core/ports"
	"github.com/bitcoin-tales/talesd/pkg/stats"
	"github.com/bitcoin-tales/talesd/pkg/walletservice"
	"github.com/bitcoin-tales/talesd/pkg/watcher"
)

// TrackerService owns the single active transaction and drives it from
// submission through polling to a terminal state, firing balance
// reconciliation exactly once per confirmed transaction.
type TrackerService interface {
	// Start begins consuming watcher events. It blocks until Stop.
	Start()
	// Stop shuts the watcher down.
	Stop()
	// SubmitSpend submits a spend from the miner wallet to the merchant
	// address and begins tracking the returned txid.
	SubmitSpend(
		ctx context.Context, amount uint64, memo string,
	) (*TxSnapshot, error)
	// PurchaseItem resolves the given menu item to its price and submits
	// the corresponding spend.
	PurchaseItem(ctx context.Context, itemID string) (*TxSnapshot, error)
	// ActiveTransaction returns a snapshot of the tracked transaction, or
	// domain.ErrNoActiveTx.
	ActiveTransaction(ctx context.Context) (*TxSnapshot, error)
	// CancelTracking stops polling and clears the active-transaction focus
	// without altering the remote transaction.
	CancelTracking(ctx context.Context) error
	// SubscribeLifecycleEvents registers a listener for state transitions.
	SubscribeLifecycleEvents() chan LifecycleEvent
	// UnsubscribeLifecycleEvents removes a previously registered listener.
	UnsubscribeLifecycleEvents(chan LifecycleEvent)
}

type trackerService struct {
	repoManager     ports.RepoManager
	walletSvc       walletservice.Service
	watcherSvc      watcher.Service
	reconciler      BalanceReconciler
	menuSvc         MenuService
	maxPollAttempts int

	mutex      *sync.Mutex
	state      TrackerState
	activeTx   *domain.Transaction
	warning    string
	observable *watcher.TransactionObservable
	pollCount  int

	listenersMtx *sync.RWMutex
	listeners    map[chan LifecycleEvent]struct{}
}

// NewTrackerService returns a TrackerService in Idle state.
// maxPollAttempts = 0 disables the attempt cap and preserves the
// poll-until-terminal behavior.
func NewTrackerService(
	repoManager ports.RepoManager,
	walletSvc walletservice.Service,
	watcherSvc watcher.Service,
	reconciler BalanceReconciler,
	menuSvc MenuService,
	maxPollAttempts int,
) TrackerService {
	return &trackerService{
		repoManager:     repoManager,
		walletSvc:       walletSvc,
		watcherSvc:      watcherSvc,
		reconciler:      reconciler,
		menuSvc:         menuSvc,
		maxPollAttempts: maxPollAttempts,
		mutex:           &sync.Mutex{},
		state:           StateIdle,
		listenersMtx:    &sync.RWMutex{},
		listeners:       map[chan LifecycleEvent]struct{}{},
	}
}

func (t *trackerService) Start() {
	go t.watcherSvc.Start()
	t.handleWatcherEvents()
}

func (t *trackerService) Stop() {
	t.watcherSvc.Stop()
}

func (t *trackerService) SubmitSpend(
	ctx context.Context, amount uint64, memo string,
) (*TxSnapshot, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.state == StatePolling {
		return nil, domain.ErrTxAlreadyActive
	}

	miner, err := t.repoManager.LedgerRepository().GetWallet(
		ctx, domain.WalletRoleMiner,
	)
	if err != nil {
		return nil, err
	}
	merchant, err := t.repoManager.LedgerRepository().GetWallet(
		ctx, domain.WalletRoleMerchant,
	)
	if err != nil {
		return nil, err
	}
	if !miner.IsProvisioned() || !merchant.IsProvisioned() {
		return nil, domain.ErrWalletNotFound
	}
	if miner.Balance < amount {
		return nil, domain.ErrInsufficientBalance
	}

	txid, err := t.walletSvc.SendTransaction(
		miner.Name, merchant.Address, amount, memo,
	)
	if err != nil {
		stats.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	stats.SubmissionsTotal.WithLabelValues("accepted").Inc()

	tx := domain.NewTransaction(txid, miner.Name, merchant.Address, amount, memo)
	if err := t.repoManager.TransactionRepository().AddTransaction(
		ctx, tx,
	); err != nil {
		return nil, fmt.Errorf("persisting transaction history: %w", err)
	}

	t.activeTx = tx
	t.state = StatePolling
	t.warning = ""
	t.pollCount = 0
	t.observable = watcher.NewTransactionObservable(miner.Name, txid)
	t.watcherSvc.AddObservable(t.observable)

	log.Infof("tracking tx %s for %d sats", txid, amount)

	snapshot := t.snapshot()
	return &snapshot, nil
}

func (t *trackerService) PurchaseItem(
	ctx context.Context, itemID string,
) (*TxSnapshot, error) {
	item, err := t.menuSvc.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	memo := fmt.Sprintf("buying %s", item.Name)
	return t.SubmitSpend(ctx, item.Price, memo)
}

func (t *trackerService) ActiveTransaction(
	ctx context.Context,
) (*TxSnapshot, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.activeTx == nil {
		return nil, domain.ErrNoActiveTx
	}
	snapshot := t.snapshot()
	return &snapshot, nil
}

func (t *trackerService) CancelTracking(ctx context.Context) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.activeTx == nil {
		return domain.ErrNoActiveTx
	}

	t.stopWatching()
	log.Infof("dismissed tracking of tx %s", t.activeTx.Txid)
	t.state = StateIdle
	t.activeTx = nil
	t.warning = ""
	return nil
}

func (t *trackerService) SubscribeLifecycleEvents() chan LifecycleEvent {
	t.listenersMtx.Lock()
	defer t.listenersMtx.Unlock()

	listener := make(chan LifecycleEvent, 10)
	t.listeners[listener] = struct{}{}
	return listener
}

func (t *trackerService) UnsubscribeLifecycleEvents(
	listener chan LifecycleEvent,
) {
	t.listenersMtx.Lock()
	defer t.listenersMtx.Unlock()

	if _, ok := t.listeners[listener]; ok {
		delete(t.listeners, listener)
		close(listener)
	}
}

// handleWatcherEvents applies poll outcomes to the state machine. Every
// transition is guarded on the current state so that responses arriving
// after a terminal state, or for a dismissed transaction, are no-ops.
func (t *trackerService) handleWatcherEvents() {
	for event := range t.watcherSvc.GetEventChannel() {
		e, ok := event.(watcher.TransactionEvent)
		if !ok {
			// CloseEvent
			return
		}

		switch e.EventType {
		case watcher.TransactionPending:
			t.handlePending(e)
		case watcher.TransactionConfirmed:
			t.handleConfirmed(e)
		case watcher.TransactionUnknown:
			t.handleUnknown(e)
		}
	}
}

func (t *trackerService) handlePending(e watcher.TransactionEvent) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.isPollingTx(e.Txid) {
		return
	}
	stats.PollsTotal.WithLabelValues("pending").Inc()

	t.pollCount++
	if t.maxPollAttempts > 0 && t.pollCount >= t.maxPollAttempts {
		t.stopWatching()
		t.state = StateTimedOut
		t.warning = fmt.Sprintf(
			"no confirmation after %d polls, giving up", t.pollCount,
		)
		log.Warnf("tx %s: %s", e.Txid, t.warning)
		t.notify()
		return
	}

	t.notify()
}

func (t *trackerService) handleConfirmed(e watcher.TransactionEvent) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.isPollingTx(e.Txid) {
		return
	}
	stats.PollsTotal.WithLabelValues("confirmed").Inc()
	stats.ConfirmationsTotal.WithLabelValues(e.Source).Inc()

	confirmation := domain.Confirmation{
		BlockHeight:   e.BlockHeight,
		BlockHash:     e.BlockHash,
		Confirmations: e.Confirmations,
		BlockTime:     e.BlockTime,
		Source:        e.Source,
	}

	ctx := context.Background()
	if err := t.repoManager.TransactionRepository().UpdateTransaction(
		ctx, e.Txid,
		func(tx *domain.Transaction) (*domain.Transaction, error) {
			if _, err := tx.Confirm(confirmation); err != nil {
				return nil, err
			}
			return tx, nil
		},
	); err != nil {
		log.WithError(err).Warnf("trying to persist confirmation of tx %s", e.Txid)
	}
	t.activeTx.Confirm(confirmation)

	t.stopWatching()
	t.state = StateConfirmed
	log.Infof(
		"tx %s confirmed at height %d (via %s)",
		e.Txid, e.BlockHeight, e.Source,
	)

	// the Polling -> Confirmed transition happens exactly once, hence
	// balances are reconciled exactly once
	if err := t.reconciler.Reconcile(ctx, t.activeTx); err != nil {
		log.WithError(err).Warnf("trying to reconcile balances for tx %s", e.Txid)
	}

	t.notify()
}

func (t *trackerService) handleUnknown(e watcher.TransactionEvent) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.isPollingTx(e.Txid) {
		return
	}
	stats.PollsTotal.WithLabelValues("unknown").Inc()

	t.stopWatching()
	t.state = StateUnknown
	t.warning = fmt.Sprintf(
		"transaction left the mempool but is not in the blockchain: %s", e.Err,
	)
	log.Warnf("tx %s: %s", e.Txid, t.warning)
	t.notify()
}

// isPollingTx is the state guard applied to every incoming poll outcome.
func (t *trackerService) isPollingTx(txid string) bool {
	return t.state == StatePolling &&
		t.activeTx != nil &&
		t.activeTx.Txid == txid
}

// stopWatching must be called with the mutex held.
func (t *trackerService) stopWatching() {
	if t.observable != nil {
		t.watcherSvc.RemoveObservable(t.observable)
		t.observable = nil
	}
}

// snapshot must be called with the mutex held.
func (t *trackerService) snapshot() TxSnapshot {
	return TxSnapshot{
		State:       t.state,
		Transaction: *t.activeTx,
		Warning:     t.warning,
	}
}

// notify must be called with the mutex held.
func (t *trackerService) notify() {
	snapshot := t.snapshot()

	t.listenersMtx.RLock()
	defer t.listenersMtx.RUnlock()
	for listener := range t.listeners {
		select {
		case listener <- LifecycleEvent(snapshot):
		default:
			// slow consumer, drop rather than stall the tracker
		}
	}
}
