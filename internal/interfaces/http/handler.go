package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/bitcoin-tales/talesd/internal/core/application"
	"github.com/bitcoin-tales/talesd/internal/core/domain"
	"github.com/bitcoin-tales/talesd/pkg/walletservice"
)

type talesHandler struct {
	operatorSvc application.OperatorService
	trackerSvc  application.TrackerService
	menuSvc     application.MenuService
}

// NewRouter returns the handler serving the whole JSON API of the daemon.
func NewRouter(
	operatorSvc application.OperatorService,
	trackerSvc application.TrackerService,
	menuSvc application.MenuService,
) http.Handler {
	h := &talesHandler{
		operatorSvc: operatorSvc,
		trackerSvc:  trackerSvc,
		menuSvc:     menuSvc,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/setup", method(http.MethodPost, h.setupHandler))
	mux.HandleFunc("/v1/balances", method(http.MethodGet, h.balancesHandler))
	mux.HandleFunc(
		"/v1/balances/refresh", method(http.MethodPost, h.refreshBalancesHandler),
	)
	mux.HandleFunc("/v1/menu", method(http.MethodGet, h.menuHandler))
	mux.HandleFunc("/v1/purchase", method(http.MethodPost, h.purchaseHandler))
	mux.HandleFunc("/v1/transaction", h.transactionHandler)
	mux.HandleFunc("/v1/transactions", method(http.MethodGet, h.historyHandler))
	mux.HandleFunc("/v1/mine", method(http.MethodPost, h.mineHandler))
	mux.HandleFunc("/v1/reset", method(http.MethodPost, h.resetHandler))
	mux.HandleFunc("/v1/events", h.eventsHandler)
	return mux
}

func (h *talesHandler) setupHandler(w http.ResponseWriter, req *http.Request) {
	if err := h.operatorSvc.Setup(req.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *talesHandler) balancesHandler(
	w http.ResponseWriter, req *http.Request,
) {
	balances, err := h.operatorSvc.GetBalances(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balancesResponse{
		MinerBalance:    balances.MinerBalance,
		MerchantBalance: balances.MerchantBalance,
	})
}

func (h *talesHandler) refreshBalancesHandler(
	w http.ResponseWriter, req *http.Request,
) {
	balances, err := h.operatorSvc.RefreshBalances(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balancesResponse{
		MinerBalance:    balances.MinerBalance,
		MerchantBalance: balances.MerchantBalance,
	})
}

func (h *talesHandler) menuHandler(w http.ResponseWriter, req *http.Request) {
	menu, err := h.menuSvc.GetMenu(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]menuItemResponse, 0, len(menu))
	for _, item := range menu {
		items = append(items, menuItemResponse{
			Id:          item.Id,
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *talesHandler) purchaseHandler(
	w http.ResponseWriter, req *http.Request,
) {
	var body purchaseRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	snapshot, err := h.trackerSvc.PurchaseItem(req.Context(), body.ItemId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSnapshotResponse(
		snapshot.State, snapshot.Transaction, snapshot.Warning,
	))
}

func (h *talesHandler) transactionHandler(
	w http.ResponseWriter, req *http.Request,
) {
	switch req.Method {
	case http.MethodGet:
		snapshot, err := h.trackerSvc.ActiveTransaction(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSnapshotResponse(
			snapshot.State, snapshot.Transaction, snapshot.Warning,
		))
	case http.MethodDelete:
		if err := h.trackerSvc.CancelTracking(req.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(
			w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed,
		)
	}
}

func (h *talesHandler) historyHandler(
	w http.ResponseWriter, req *http.Request,
) {
	history, err := h.operatorSvc.GetHistory(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	txs := make([]transactionResponse, 0, len(history))
	for _, tx := range history {
		txs = append(txs, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *talesHandler) mineHandler(w http.ResponseWriter, req *http.Request) {
	var body mineRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	if err := h.operatorSvc.Mine(req.Context(), body.Blocks); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *talesHandler) resetHandler(w http.ResponseWriter, req *http.Request) {
	if err := h.trackerSvc.CancelTracking(req.Context()); err != nil &&
		!errors.Is(err, domain.ErrNoActiveTx) {
		writeError(w, err)
		return
	}
	if err := h.operatorSvc.Reset(req.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func method(
	allowed string, next http.HandlerFunc,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != allowed {
			http.Error(
				w,
				http.StatusText(http.StatusMethodNotAllowed),
				http.StatusMethodNotAllowed,
			)
			return
		}
		next(w, req)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("http: trying to write response")
	}
}

// writeError maps service errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var submissionErr *walletservice.SubmissionError
	switch {
	case errors.Is(err, domain.ErrTxAlreadyActive):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNoActiveTx),
		errors.Is(err, domain.ErrTxNotFound),
		errors.Is(err, domain.ErrUnknownMenuItem):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrWalletNotFound):
		status = http.StatusPreconditionFailed
	case errors.As(err, &submissionErr):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).Error("http: request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
