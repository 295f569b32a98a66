package watcher

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/bitcoin-tales/talesd/pkg/walletservice"
)

const (
	New       Status = "NEW"
	Waiting   Status = "WAITING"
	Processed Status = "PROCESSED"
)

type Status string

type observableStatus struct {
	sync.RWMutex
	status Status
}

func newObservableStatus() *observableStatus {
	return &observableStatus{
		status: New,
	}
}

func (o *observableStatus) Get() Status {
	o.RLock()
	defer o.RUnlock()
	return o.status
}

func (o *observableStatus) Set(status Status) {
	o.Lock()
	defer o.Unlock()
	o.status = status
}

// TransactionObservable watches a submitted transaction through the wallet
// service's mempool endpoint. A not-found answer is followed by the
// confirmed-transaction lookup before anything is reported, so that "left
// the mempool" is never silently treated as "confirmed".
type TransactionObservable struct {
	WalletName string
	TxID       string
}

// NewTransactionObservable ...
func NewTransactionObservable(walletName, txid string) *TransactionObservable {
	return &TransactionObservable{WalletName: walletName, TxID: txid}
}

func (t *TransactionObservable) observe(
	walletSvc walletservice.Service,
	errChan chan error,
	eventChan chan Event,
	observableStatus *observableStatus,
	rateLimiter *rate.Limiter,
) {
	if t == nil {
		return
	}

	observableStatus.Set(Waiting)
	if err := rateLimiter.Wait(context.Background()); err != nil {
		errChan <- err
		return
	}

	entry, err := walletSvc.GetMempoolEntry(t.WalletName, t.TxID)
	if err == nil {
		observableStatus.Set(Processed)

		eventType := TransactionPending
		source := ""
		if entry.Confirmed {
			eventType = TransactionConfirmed
			source = "mempool"
		}
		eventChan <- TransactionEvent{
			Txid:      t.TxID,
			EventType: eventType,
			Entry:     entry,
			Source:    source,
		}
		return
	}

	if !errors.Is(err, walletservice.ErrTxNotInMempool) {
		// transient failure, the next tick retries
		observableStatus.Set(Processed)
		errChan <- err
		return
	}

	// the entry left the mempool: only a successful lookup may report the
	// transaction as confirmed
	confirmedTx, err := walletSvc.GetConfirmedTransaction(t.WalletName, t.TxID)
	observableStatus.Set(Processed)
	if err != nil {
		eventChan <- TransactionEvent{
			Txid:      t.TxID,
			EventType: TransactionUnknown,
			Err:       err,
		}
		return
	}

	eventChan <- TransactionEvent{
		Txid:          t.TxID,
		EventType:     TransactionConfirmed,
		BlockHeight:   confirmedTx.BlockHeight,
		BlockHash:     confirmedTx.BlockHash,
		Confirmations: confirmedTx.Confirmations,
		BlockTime:     confirmedTx.BlockTime,
		Source:        "lookup",
	}
}

func (t *TransactionObservable) key() string {
	return t.TxID
}

type observableHandler struct {
	observable       Observable
	walletSvc        walletservice.Service
	wg               *sync.WaitGroup
	ticker           *time.Ticker
	eventChan        chan Event
	errChan          chan error
	stopChan         chan int
	observableStatus *observableStatus
	rateLimiter      *rate.Limiter
}

func newObservableHandler(
	observable Observable,
	walletSvc walletservice.Service,
	wg *sync.WaitGroup,
	interval int,
	eventChan chan Event,
	errChan chan error,
	rateLimiter *rate.Limiter,
) *observableHandler {
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	stopChan := make(chan int, 1)

	return &observableHandler{
		observable,
		walletSvc,
		wg,
		ticker,
		eventChan,
		errChan,
		stopChan,
		newObservableStatus(),
		rateLimiter,
	}
}

func (oh *observableHandler) start() {
	log.Debugf("start observing tx: %v", oh.observable.key())
	oh.wg.Add(1)
	for {
		select {
		case <-oh.ticker.C:
			if oh.observableStatus.Get() != Waiting {
				oh.observable.observe(
					oh.walletSvc,
					oh.errChan,
					oh.eventChan,
					oh.observableStatus,
					oh.rateLimiter,
				)
			}
		case <-oh.stopChan:
			oh.ticker.Stop()
			close(oh.stopChan)
			return
		}
	}
}

func (oh *observableHandler) stop() {
	log.Debugf("stop observing tx: %v", oh.observable.key())
	oh.stopChan <- 1
	oh.wg.Done()
}
