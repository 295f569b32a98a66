package httpinterface_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitcoin-tales/talesd/internal/core/application"
	"github.com/bitcoin-tales/talesd/internal/core/domain"
	httpinterface "github.com/bitcoin-tales/talesd/internal/interfaces/http"
	"github.com/bitcoin-tales/talesd/internal/infrastructure/storage/db/inmemory"
	"github.com/bitcoin-tales/talesd/pkg/walletservice"
	"github.com/bitcoin-tales/talesd/pkg/watcher"
)

func TestHTTPInterface(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	t.Run("setup", func(t *testing.T) {
		status, _ := doRequest(t, server, http.MethodPost, "/v1/setup", nil)
		require.Equal(t, http.StatusNoContent, status)
	})

	t.Run("balances", func(t *testing.T) {
		status, _ := doRequest(
			t, server, http.MethodPost, "/v1/balances/refresh", nil,
		)
		require.Equal(t, http.StatusOK, status)

		status, body := doRequest(t, server, http.MethodGet, "/v1/balances", nil)
		require.Equal(t, http.StatusOK, status)

		var balances map[string]uint64
		require.NoError(t, json.Unmarshal(body, &balances))
		require.Equal(t, uint64(100000), balances["miner_balance"])
	})

	t.Run("menu", func(t *testing.T) {
		status, body := doRequest(t, server, http.MethodGet, "/v1/menu", nil)
		require.Equal(t, http.StatusOK, status)

		var items []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, len(domain.DefaultMenu))
	})

	t.Run("no_active_transaction", func(t *testing.T) {
		status, _ := doRequest(t, server, http.MethodGet, "/v1/transaction", nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("purchase", func(t *testing.T) {
		status, body := doRequest(
			t, server, http.MethodPost, "/v1/purchase",
			map[string]interface{}{"item_id": "mango-salad"},
		)
		require.Equal(t, http.StatusCreated, status)

		var snapshot map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &snapshot))
		require.Equal(t, "POLLING", snapshot["state"])

		// a second purchase while one is tracked is rejected
		status, _ = doRequest(
			t, server, http.MethodPost, "/v1/purchase",
			map[string]interface{}{"item_id": "hummus"},
		)
		require.Equal(t, http.StatusConflict, status)

		// unknown menu item
		status, _ = doRequest(
			t, server, http.MethodPost, "/v1/purchase",
			map[string]interface{}{"item_id": "notexisting"},
		)
		require.Equal(t, http.StatusNotFound, status)

		status, _ = doRequest(t, server, http.MethodGet, "/v1/transaction", nil)
		require.Equal(t, http.StatusOK, status)

		// dismiss
		status, _ = doRequest(
			t, server, http.MethodDelete, "/v1/transaction", nil,
		)
		require.Equal(t, http.StatusNoContent, status)

		status, _ = doRequest(t, server, http.MethodGet, "/v1/transaction", nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("history", func(t *testing.T) {
		status, body := doRequest(
			t, server, http.MethodGet, "/v1/transactions", nil,
		)
		require.Equal(t, http.StatusOK, status)

		var txs []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &txs))
		require.Len(t, txs, 1)
	})

	t.Run("mine", func(t *testing.T) {
		status, _ := doRequest(
			t, server, http.MethodPost, "/v1/mine",
			map[string]interface{}{"blocks": 0},
		)
		require.Equal(t, http.StatusInternalServerError, status)

		status, _ = doRequest(
			t, server, http.MethodPost, "/v1/mine",
			map[string]interface{}{"blocks": 1},
		)
		require.Equal(t, http.StatusNoContent, status)
	})

	t.Run("reset", func(t *testing.T) {
		status, _ := doRequest(t, server, http.MethodPost, "/v1/reset", nil)
		require.Equal(t, http.StatusNoContent, status)

		status, body := doRequest(
			t, server, http.MethodGet, "/v1/transactions", nil,
		)
		require.Equal(t, http.StatusOK, status)

		var txs []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &txs))
		require.Empty(t, txs)
	})

	t.Run("method_not_allowed", func(t *testing.T) {
		status, _ := doRequest(t, server, http.MethodGet, "/v1/setup", nil)
		require.Equal(t, http.StatusMethodNotAllowed, status)
	})
}

func newTestServer(t *testing.T) *httptest.Server {
	wallet := &fakeWalletService{
		balances: map[string]uint64{"mike": 100000, "mary": 0},
	}
	repoManager := inmemory.NewRepoManager()
	watcherSvc := watcher.NewService(watcher.Opts{
		WalletSvc:              wallet,
		IntervalInMilliseconds: 1000,
		ErrorHandler:           func(err error) {},
	})
	menuSvc := application.NewMenuService(repoManager)
	reconciler := application.NewBalanceReconciler(repoManager, wallet)
	trackerSvc := application.NewTrackerService(
		repoManager, wallet, watcherSvc, reconciler, menuSvc, 0,
	)
	operatorSvc := application.NewOperatorService(repoManager, wallet)

	go trackerSvc.Start()
	t.Cleanup(trackerSvc.Stop)

	return httptest.NewServer(
		httpinterface.NewRouter(operatorSvc, trackerSvc, menuSvc),
	)
}

func doRequest(
	t *testing.T,
	server *httptest.Server,
	method, path string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		serialized, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(serialized)
	}

	req, err := http.NewRequest(method, server.URL+path, reqBody)
	require.NoError(t, err)

	res, err := server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := ioutil.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, resBody
}

// fakeWalletService keeps transactions forever pending, the lifecycle is
// covered by the application tests.
type fakeWalletService struct {
	lock      sync.Mutex
	balances  map[string]uint64
	txCounter int
}

func (f *fakeWalletService) CreateWallet(name string) (string, error) {
	if name == domain.WalletRoleMiner {
		return "mike", nil
	}
	return "mary", nil
}

func (f *fakeWalletService) CreateAddress(
	walletName, label string,
) (string, error) {
	return fmt.Sprintf("bcrt1q%s", walletName), nil
}

func (f *fakeWalletService) GetBalance(walletName string) (uint64, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.balances[walletName], nil
}

func (f *fakeWalletService) SendTransaction(
	fromWallet, toAddress string, amount uint64, message string,
) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.txCounter++
	return fmt.Sprintf("%064x", f.txCounter), nil
}

func (f *fakeWalletService) GetMempoolEntry(
	walletName, txid string,
) (*walletservice.MempoolEntry, error) {
	return &walletservice.MempoolEntry{Txid: txid, FromWallet: walletName}, nil
}

func (f *fakeWalletService) GetConfirmedTransaction(
	walletName, txid string,
) (*walletservice.ConfirmedTx, error) {
	return nil, walletservice.ErrTxNotFound
}

func (f *fakeWalletService) Mine(
	walletName, address string, blocks int,
) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.balances[walletName] += uint64(blocks) * 2500
	return nil
}
