package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/duartefn/moneybook/internal/http/middleware"
	"github.com/duartefn/moneybook/internal/ledger"
	"github.com/duartefn/moneybook/internal/transaction"
)

type Handler struct {
	svc     *transaction.Service
	ledgers *ledger.Service
}

func NewHandler(svc *transaction.Service, ledgers *ledger.Service) *Handler {
	return &Handler{svc: svc, ledgers: ledgers}
}

// Routes is mounted under /ledgers/{ledgerID}/transactions; every
// request is checked against the caller's ledger collection first.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
	r.Get("/summary", h.summary)
	r.Get("/breakdown", h.breakdown)
	r.Get("/trend", h.trend)
}

// authorize resolves the ledger from the URL against the caller.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	ledgerID := chi.URLParam(r, "ledgerID")
	_, err := h.ledgers.Get(r.Context(), middleware.User(r.Context()), ledgerID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "ledger not found", http.StatusNotFound)
			return "", false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return "", false
	}
	return ledgerID, true
}

type createRequest struct {
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	Category    string           `json:"category"`
	Type        transaction.Type `json:"type"`
	Date        time.Time        `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Add(r.Context(), transaction.AddParams{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Currency:    req.Currency,
		Type:        req.Type,
		Date:        req.Date,
		User:        middleware.User(r.Context()),
		LedgerID:    ledgerID,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusCreated, tx)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	txs, err := h.svc.List(r.Context(), ledgerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, txs)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	err := h.svc.Delete(r.Context(), middleware.User(r.Context()), ledgerID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// period builds the summary window from year/month query params. Both
// absent means the current month; year alone covers the whole year.
func period(r *http.Request) transaction.Period {
	q := r.URL.Query()
	if q.Get("all") == "true" {
		return transaction.AllTime()
	}

	year, yerr := strconv.Atoi(q.Get("year"))
	month, merr := strconv.Atoi(q.Get("month"))
	switch {
	case yerr == nil && merr == nil:
		return transaction.Month(year, time.Month(month))
	case yerr == nil:
		return transaction.Year(year)
	default:
		return transaction.CurrentMonth(time.Now())
	}
}

type summaryResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	sum, err := h.svc.Summarize(r.Context(), ledgerID, period(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	balance, err := h.svc.Balance(r.Context(), ledgerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, summaryResponse{
		Income:  sum.Income,
		Expense: sum.Expense,
		Net:     sum.Net(),
		Balance: balance,
	})
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	rows, err := h.svc.CategoryBreakdown(r.Context(), ledgerID, period(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		year = time.Now().Year()
	}

	rows, err := h.svc.MonthlyTrend(r.Context(), ledgerID, year)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, rows)
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
