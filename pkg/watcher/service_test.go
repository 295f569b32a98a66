package watcher

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bitcoin-tales/talesd/pkg/walletservice"
)

func TestWatcherReportsPendingThenConfirmed(t *testing.T) {
	walletSvc := &mockWalletService{confirmAfter: 2}
	watchSvc := NewService(Opts{
		WalletSvc:              walletSvc,
		IntervalInMilliseconds: 50,
		ErrorHandler:           func(err error) { t.Log(err) },
		RequestsPerSecond:      1000,
		RequestsBurst:          10,
	})

	go watchSvc.Start()
	watchSvc.AddObservable(NewTransactionObservable("mike", "tx-in-mempool"))

	events := collectTxEvents(watchSvc, 3, 3*time.Second)
	watchSvc.Stop()

	require.GreaterOrEqual(t, len(events), 2)
	require.Equal(t, TransactionPending, events[0].EventType)
	last := events[len(events)-1]
	require.Equal(t, TransactionConfirmed, last.EventType)
	require.Equal(t, "mempool", last.Source)
}

func TestWatcherFollowsNotFoundWithLookup(t *testing.T) {
	walletSvc := &mockWalletService{goneFromMempool: true}
	watchSvc := NewService(Opts{
		WalletSvc:              walletSvc,
		IntervalInMilliseconds: 50,
		ErrorHandler:           func(err error) { t.Log(err) },
		RequestsPerSecond:      1000,
		RequestsBurst:          10,
	})

	go watchSvc.Start()
	watchSvc.AddObservable(NewTransactionObservable("mike", "tx-gone"))

	events := collectTxEvents(watchSvc, 1, 3*time.Second)
	watchSvc.Stop()

	require.Len(t, events, 1)
	require.Equal(t, TransactionConfirmed, events[0].EventType)
	require.Equal(t, "lookup", events[0].Source)
	require.Equal(t, uint64(150), events[0].BlockHeight)
}

func TestWatcherReportsUnknownOnAmbiguousStatus(t *testing.T) {
	walletSvc := &mockWalletService{goneFromMempool: true, lookupFails: true}
	watchSvc := NewService(Opts{
		WalletSvc:              walletSvc,
		IntervalInMilliseconds: 50,
		ErrorHandler:           func(err error) { t.Log(err) },
		RequestsPerSecond:      1000,
		RequestsBurst:          10,
	})

	go watchSvc.Start()
	watchSvc.AddObservable(NewTransactionObservable("mike", "tx-ambiguous"))

	events := collectTxEvents(watchSvc, 1, 3*time.Second)
	watchSvc.Stop()

	require.Len(t, events, 1)
	require.Equal(t, TransactionUnknown, events[0].EventType)
	require.Error(t, events[0].Err)
}

func TestRemoveObservableStopsPolling(t *testing.T) {
	walletSvc := &mockWalletService{}
	watchSvc := NewService(Opts{
		WalletSvc:              walletSvc,
		IntervalInMilliseconds: 50,
		ErrorHandler:           func(err error) { t.Log(err) },
		RequestsPerSecond:      1000,
		RequestsBurst:          10,
	})

	go watchSvc.Start()
	observable := NewTransactionObservable("mike", "tx-watched")
	watchSvc.AddObservable(observable)
	time.Sleep(120 * time.Millisecond)
	watchSvc.RemoveObservable(observable)

	// give any in-flight tick the chance to settle, then measure
	time.Sleep(100 * time.Millisecond)
	countAtRemoval := walletSvc.MempoolCalls()
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, countAtRemoval, walletSvc.MempoolCalls())

	watchSvc.Stop()
}

func collectTxEvents(
	watchSvc Service, max int, timeout time.Duration,
) []TransactionEvent {
	events := make([]TransactionEvent, 0, max)
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case event := <-watchSvc.GetEventChannel():
			switch e := event.(type) {
			case CloseEvent:
				return events
			case TransactionEvent:
				events = append(events, e)
				if e.EventType != TransactionPending {
					return events
				}
				if len(events) >= max {
					return events
				}
			}
		case <-timer.C:
			return events
		}
	}
}

// MOCK //

type mockWalletService struct {
	sync.Mutex
	mempoolCalls    int
	confirmAfter    int
	goneFromMempool bool
	lookupFails     bool
}

func (m *mockWalletService) MempoolCalls() int {
	m.Lock()
	defer m.Unlock()
	return m.mempoolCalls
}

func (m *mockWalletService) GetMempoolEntry(
	walletName, txid string,
) (*walletservice.MempoolEntry, error) {
	m.Lock()
	defer m.Unlock()
	m.mempoolCalls++

	if m.goneFromMempool {
		return nil, walletservice.ErrTxNotInMempool
	}

	confirmed := m.confirmAfter > 0 && m.mempoolCalls > m.confirmAfter
	return &walletservice.MempoolEntry{
		Txid:       txid,
		FromWallet: walletName,
		ToAddress:  "bcrt1qmary",
		Amount:     20000,
		Confirmed:  confirmed,
	}, nil
}

func (m *mockWalletService) GetConfirmedTransaction(
	walletName, txid string,
) (*walletservice.ConfirmedTx, error) {
	if m.lookupFails {
		return nil, walletservice.ErrTxNotFound
	}
	return &walletservice.ConfirmedTx{
		Txid:          txid,
		BlockHeight:   150,
		BlockHash:     "00000000000000000007aabb",
		Confirmations: 1,
		BlockTime:     1700000000,
	}, nil
}

func (m *mockWalletService) CreateWallet(name string) (string, error) {
	return "", errors.New("implement me")
}

func (m *mockWalletService) CreateAddress(walletName, label string) (string, error) {
	return "", errors.New("implement me")
}

func (m *mockWalletService) GetBalance(walletName string) (uint64, error) {
	return 0, errors.New("implement me")
}

func (m *mockWalletService) SendTransaction(
	fromWallet, toAddress string, amount uint64, message string,
) (string, error) {
	return "", errors.New("implement me")
}

func (m *mockWalletService) Mine(walletName, address string, blocks int) error {
	return errors.New("implement me")
}
