package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duartefn/moneybook/internal/category"
	"github.com/duartefn/moneybook/internal/http/middleware"
	"github.com/duartefn/moneybook/internal/ledger"
)

type Handler struct {
	registry *category.Registry
	ledgers  *ledger.Service
}

func NewHandler(registry *category.Registry, ledgers *ledger.Service) *Handler {
	return &Handler{registry: registry, ledgers: ledgers}
}

// Routes is mounted under /ledgers/{ledgerID}/categories.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Delete("/{name}", h.remove)
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

func categoryType(r *http.Request) (category.Type, bool) {
	switch t := category.Type(r.URL.Query().Get("type")); t {
	case category.TypeIncome, category.TypeExpense:
		return t, true
	default:
		return "", false
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	t, ok := categoryType(r)
	if !ok {
		http.Error(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	names, err := h.registry.All(r.Context(), middleware.User(r.Context()), ledgerID, t)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(names); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addRequest struct {
	Type category.Type `json:"type"`
	Name string        `json:"name"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Type != category.TypeIncome && req.Type != category.TypeExpense {
		http.Error(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	err := h.registry.AddCustom(r.Context(), middleware.User(r.Context()), ledgerID, req.Type, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrBlankName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, category.ErrExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	t, ok := categoryType(r)
	if !ok {
		http.Error(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	err := h.registry.RemoveCustom(r.Context(), middleware.User(r.Context()), ledgerID, t, chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, category.ErrNotCustom) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
