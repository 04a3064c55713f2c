package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/coinkeeper/internal/server/services"
)

// AccountService is the subset of services.AccountService the handlers use.
type AccountService interface {
	Login(ctx context.Context, email string, name *string) (*services.AccountView, error)
	WhoAmI(ctx context.Context, credential string) (*services.AccountView, error)
	AdjustCoins(ctx context.Context, credential string, amount int64) (int64, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	accounts AccountService
	logger   logging.Logger
	metrics  *metrics.Metrics
	storage  string
}

// NewHandler builds the handler set. storage names the configured backend in
// the diagnostic endpoint; mt may be nil to disable /metrics.
func NewHandler(accounts AccountService, l logging.Logger, mt *metrics.Metrics, storage string) *Handler {
	return &Handler{
		accounts: accounts,
		logger:   l.With("module", "http_handler"),
		metrics:  mt,
		storage:  storage,
	}
}

type loginRequest struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type accountResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Coins int64  `json:"coins"`
}

type addCoinsRequest struct {
	Amount *int64 `json:"amount"`
}

type coinsResponse struct {
	Coins int64 `json:"coins"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type diagnosticResponse struct {
	Backend  string `json:"backend"`
	Storage  string `json:"storage"`
	Database string `json:"database"`
	Detail   string `json:"detail,omitempty"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "AV Coins Backend Running"})
}

func (h *Handler) handleHello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello from the backend API!"})
}

// handleStoreDiagnostic always answers 200; the body reports store health.
func (h *Handler) handleStoreDiagnostic(w http.ResponseWriter, r *http.Request) {
	resp := diagnosticResponse{Backend: "running", Storage: h.storage, Database: "connected"}
	if err := h.accounts.Ping(r.Context()); err != nil {
		resp.Database = "unavailable"
		resp.Detail = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	email, err := common.ValidateEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	name := req.Name
	if name != nil && strings.TrimSpace(*name) == "" {
		name = nil
	}

	view, err := h.accounts.Login(r.Context(), email, name)
	if err != nil {
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(view))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	view, err := h.accounts.WhoAmI(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(view))
}

func (h *Handler) handleAddCoins(w http.ResponseWriter, r *http.Request) {
	credential := r.Header.Get("Authorization")
	if strings.TrimSpace(credential) == "" {
		writeServiceError(w, common.ErrorUnauthorized)
		return
	}

	var req addCoinsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount is required")
		return
	}

	coins, err := h.accounts.AdjustCoins(r.Context(), credential, *req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coinsResponse{Coins: coins})
}

func toAccountResponse(v *services.AccountView) accountResponse {
	return accountResponse{Token: v.Token, Email: v.Email, Name: v.Name, Coins: v.Coins}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(v); err != nil {
		return errors.New("request body is not valid JSON")
	}
	return nil
}
