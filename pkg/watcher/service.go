package watcher

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/bitcoin-tales/talesd/pkg/walletservice"
)

const (
	eventQueueMaxSize = 100
	errorQueueMaxSize = 10
)

type txWatcher struct {
	interval     int
	walletSvc    walletservice.Service
	errChan      chan error
	eventChan    chan Event
	observables  map[string]*observableHandler
	errorHandler func(err error)
	rateLimiter  *rate.Limiter
	mutex        *sync.RWMutex
	wg           *sync.WaitGroup
}

// Opts defines the parameters needed for creating a watcher service with the
// NewService method.
type Opts struct {
	WalletSvc              walletservice.Service
	IntervalInMilliseconds int
	ErrorHandler           func(err error)
	RequestsPerSecond      float64
	RequestsBurst          int
}

// NewService returns a txWatcher ready to watch submitted transactions. Use
// the Start and Stop methods to manage it.
func NewService(opts Opts) Service {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := opts.RequestsBurst
	if burst <= 0 {
		burst = 1
	}

	return &txWatcher{
		interval:     opts.IntervalInMilliseconds,
		walletSvc:    opts.WalletSvc,
		errChan:      make(chan error, errorQueueMaxSize),
		eventChan:    make(chan Event, eventQueueMaxSize),
		observables:  map[string]*observableHandler{},
		errorHandler: opts.ErrorHandler,
		rateLimiter:  rate.NewLimiter(rate.Limit(rps), burst),
		mutex:        &sync.RWMutex{},
		wg:           &sync.WaitGroup{},
	}
}

// Start starts the watcher which periodically polls the wallet service for
// every watched transaction.
func (w *txWatcher) Start() {
	for err := range w.errChan {
		go w.errorHandler(err)
	}
}

// Stop stops the watcher and all of its observables.
func (w *txWatcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	for _, obsHandler := range w.observables {
		go obsHandler.stop()
	}
	w.observables = map[string]*observableHandler{}
	w.wg.Wait()
	w.eventChan <- CloseEvent{}
	close(w.errChan)
}

// GetEventChannel returns the channel where poll outcomes are published.
func (w *txWatcher) GetEventChannel() chan Event {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.eventChan
}

// AddObservable adds a new Observable to the list of watched ones, only if
// the same Observable is not already in the list.
func (w *txWatcher) AddObservable(observable Observable) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, ok := w.observables[observable.key()]; !ok {
		obsHandler := newObservableHandler(
			observable,
			w.walletSvc,
			w.wg,
			w.interval,
			w.eventChan,
			w.errChan,
			w.rateLimiter,
		)

		w.observables[observable.key()] = obsHandler
		go obsHandler.start()
	}
}

// RemoveObservable stops watching the given Observable. The stop is
// deterministic: once this returns no further poll is issued for it.
func (w *txWatcher) RemoveObservable(observable Observable) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if obsHandler, ok := w.observables[observable.key()]; ok {
		obsHandler.stop()
		delete(w.observables, observable.key())
	}
}
