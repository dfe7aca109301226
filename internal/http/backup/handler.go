package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/duartefn/moneybook/internal/backup"
	"github.com/duartefn/moneybook/internal/currency"
	"github.com/duartefn/moneybook/internal/http/middleware"
	"github.com/duartefn/moneybook/internal/ledger"
	"github.com/duartefn/moneybook/internal/transaction"
)

type Handler struct {
	svc      *backup.Service
	txs      *transaction.Service
	ledgers  *ledger.Service
	currency *currency.Service
}

func NewHandler(svc *backup.Service, txs *transaction.Service, ledgers *ledger.Service, cur *currency.Service) *Handler {
	return &Handler{svc: svc, txs: txs, ledgers: ledgers, currency: cur}
}

// Routes registers the per-ledger export and restore endpoints on the
// ledgers router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{ledgerID}/export", h.export)
	r.Post("/{ledgerID}/restore", h.restore)
}

// SnapshotRoutes is mounted under /backup, outside any ledger scope.
func (h *Handler) SnapshotRoutes(r chi.Router) {
	r.Get("/latest", h.latest)
}

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

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	txs, err := h.txs.List(r.Context(), ledgerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	stamp := time.Now().Format("20060102")
	switch format := r.URL.Query().Get("format"); format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "transactions_"+stamp+".xlsx"))
		if err := h.svc.ExportXLSX(w, txs, h.currency.Reporting()); err != nil {
			slog.Error("failed to write spreadsheet export", "error", err)
		}
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "transactions_"+stamp+".json"))
		if err := h.svc.ExportJSON(w, txs); err != nil {
			slog.Error("failed to write export", "error", err)
		}
	default:
		http.Error(w, "format must be json or xlsx", http.StatusBadRequest)
	}
}

type restoreResponse struct {
	Restored int `json:"restored"`
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	n, err := h.svc.Restore(r.Context(), ledgerID, r.Body)
	if err != nil {
		if errors.Is(err, backup.ErrMalformed) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(restoreResponse{Restored: n}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Latest(r.Context(), middleware.User(r.Context()))
	if err != nil {
		http.Error(w, "no snapshot available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
