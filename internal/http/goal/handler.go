package goal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/duartefn/moneybook/internal/goal"
	"github.com/duartefn/moneybook/internal/http/middleware"
	"github.com/duartefn/moneybook/internal/ledger"
)

type Handler struct {
	svc     *goal.Service
	ledgers *ledger.Service
}

func NewHandler(svc *goal.Service, ledgers *ledger.Service) *Handler {
	return &Handler{svc: svc, ledgers: ledgers}
}

// Routes is mounted under /ledgers/{ledgerID}/goals.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.upsert)
	r.Put("/{id}", h.upsert)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/progress", h.progress)
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

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.List(r.Context(), middleware.User(r.Context()), ledgerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, goals)
}

type upsertRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     time.Time       `json:"deadline"`
	Description  string          `json:"description"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	g, err := h.svc.Upsert(r.Context(), middleware.User(r.Context()), goal.UpsertParams{
		ID:           id,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Description:  req.Description,
		LedgerID:     ledgerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, goal.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, goal.ErrNotFound):
			http.Error(w, "goal not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	respond(w, status, g)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r); !ok {
		return
	}

	err := h.svc.Delete(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	user := middleware.User(r.Context())
	goals, err := h.svc.List(r.Context(), user, ledgerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	for _, g := range goals {
		if g.ID != id {
			continue
		}
		report, err := h.svc.Progress(r.Context(), g)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		respond(w, http.StatusOK, report)
		return
	}
	http.Error(w, "goal not found", http.StatusNotFound)
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
