package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/joeymizrahi/personal-finance-app/internal/api/middleware"
	"github.com/joeymizrahi/personal-finance-app/internal/apperrors"
	"github.com/joeymizrahi/personal-finance-app/internal/domain"
	"github.com/joeymizrahi/personal-finance-app/internal/ledger"
)

// LedgerService is the slice of the ledger the handlers need. An interface so
// tests can stand in for the remote-backed service.
type LedgerService interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
	Pillars(ctx context.Context) ([]domain.Pillar, error)
	CategoryTree(ctx context.Context, transactionType string) ([]domain.Category, map[string][]domain.Category, error)
	LogExpenseOrIncome(ctx context.Context, req ledger.TransactionRequest) (*notionapi.Page, error)
	Transfer(ctx context.Context, req ledger.TransferRequest) (string, error)
	LogInvestment(ctx context.Context, req ledger.InvestmentRequest) (string, error)
}

// LedgerHandler serves the entry form data and the posting endpoints.
type LedgerHandler struct {
	svc LedgerService
	log zerolog.Logger
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(svc LedgerService, log zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		svc: svc,
		log: log,
	}
}

type accountJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Index handles GET /. It returns the data the entry form needs: accounts
// partitioned by the investment flag, and pillars. Fetched fresh every time.
func (h *LedgerHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := h.svc.Accounts(ctx)
	if err != nil {
		h.writeServiceError(w, err, "Failed to load accounts")
		return
	}
	pillars, err := h.svc.Pillars(ctx)
	if err != nil {
		h.writeServiceError(w, err, "Failed to load pillars")
		return
	}

	invest := []accountJSON{}
	regular := []accountJSON{}
	for _, acc := range accounts {
		entry := accountJSON{ID: acc.ID, Name: acc.Name}
		if acc.IsInvestment {
			invest = append(invest, entry)
		} else {
			regular = append(regular, entry)
		}
	}

	pillarList := make([]accountJSON, 0, len(pillars))
	for _, p := range pillars {
		pillarList = append(pillarList, accountJSON{ID: p.ID, Name: p.Name})
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"non_investment_accounts": regular,
		"investment_accounts":     invest,
		"pillars":                 pillarList,
	})
}

// LogTransaction handles POST /log_transaction: expense, income or transfer,
// selected by the form's type field.
func (h *LedgerHandler) LogTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	kind := r.FormValue("type")
	switch kind {
	case "expense", "income":
		_, err := h.svc.LogExpenseOrIncome(ctx, ledger.TransactionRequest{
			Kind:        kind,
			Description: formValue(r, "description", "No description"),
			Amount:      formFloat(r, "amount"),
			AccountID:   r.FormValue("from_account_id"),
			CategoryID:  r.FormValue("category_id"),
			PillarID:    r.FormValue("pillar_id"),
			Currency:    formValue(r, "currency", "ILS"),
		})
		if err != nil {
			h.writeServiceError(w, err, "Failed to log transaction")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged transaction."})

	case "transfer":
		msg, err := h.svc.Transfer(ctx, ledger.TransferRequest{
			FromAccountID: r.FormValue("from_account_id"),
			ToAccountID:   r.FormValue("to_account_id"),
			Amount:        formFloat(r, "amount"),
			Currency:      formValue(r, "currency", "ILS"),
		})
		if err != nil {
			h.writeServiceError(w, err, "Failed to log transfer")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": msg})

	default:
		middleware.WriteError(w, http.StatusBadRequest, "Unknown transaction type")
	}
}

// LogInvestment handles POST /log_investment.
func (h *LedgerHandler) LogInvestment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	msg, err := h.svc.LogInvestment(ctx, ledger.InvestmentRequest{
		Action:        r.FormValue("action"),
		AccountID:     r.FormValue("account_id"),
		Ticker:        r.FormValue("ticker"),
		Quantity:      formFloat(r, "quantity"),
		PricePerShare: formFloat(r, "price_per_share"),
		Fees:          formFloat(r, "fees"),
		FromAmount:    formFloat(r, "from_amount"),
		FromCurrency:  r.FormValue("from_currency"),
		ToAmount:      formFloat(r, "to_amount"),
		ToCurrency:    r.FormValue("to_currency"),
		Rate:          formFloat(r, "conversion_rate"),
		Fee:           formFloat(r, "conversion_fee"),
	})
	if err != nil {
		h.writeServiceError(w, err, "Failed to log investment transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// Categories handles GET /api/categories/{transactionType}.
func (h *LedgerHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	transactionType := chi.URLParam(r, "transactionType")

	parents, children, err := h.svc.CategoryTree(ctx, transactionType)
	if err != nil {
		h.writeServiceError(w, err, "Failed to load categories")
		return
	}

	parentList := make([]categoryJSON, 0, len(parents))
	for _, cat := range parents {
		parentList = append(parentList, categoryJSON{ID: cat.ID, Name: cat.Name})
	}
	childrenMap := make(map[string][]categoryJSON, len(children))
	for parentID, cats := range children {
		list := make([]categoryJSON, 0, len(cats))
		for _, cat := range cats {
			list = append(list, categoryJSON{ID: cat.ID, Name: cat.Name})
		}
		childrenMap[parentID] = list
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"parents":      parentList,
		"children_map": childrenMap,
	})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// writeServiceError maps the error taxonomy to HTTP statuses. Partial writes
// and remote failures surface their full message: the operator needs it for
// manual remediation.
func (h *LedgerHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	h.log.Error().Err(err).Msg(fallback)

	var validation *apperrors.ValidationError
	var insufficient *apperrors.InsufficientHoldingError
	var partial *apperrors.PartialWriteError
	var remote *apperrors.RemoteError

	switch {
	case errors.As(err, &validation), errors.As(err, &insufficient):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &partial), errors.As(err, &remote):
		middleware.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		middleware.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

func formValue(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

func formFloat(r *http.Request, key string) float64 {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
