package watcher

import (
	"golang.org/x/time/rate"

	"github.com/bitcoin-tales/talesd/pkg/walletservice"
)

// Event are emitted through a channel during observation.
type Event interface {
	Type() EventType
}

// Observable represents an object that can be watched on the wallet service.
type Observable interface {
	observe(
		walletSvc walletservice.Service,
		errChan chan error,
		eventChan chan Event,
		observableStatus *observableStatus,
		rateLimiter *rate.Limiter,
	)
	key() string
}

// Service is the interface for the watcher.
type Service interface {
	Start()
	Stop()
	AddObservable(observable Observable)
	RemoveObservable(observable Observable)
	GetEventChannel() chan Event
}
