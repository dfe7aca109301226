package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duartefn/moneybook/internal/http/middleware"
	"github.com/duartefn/moneybook/internal/invite"
	"github.com/duartefn/moneybook/internal/ledger"
)

type Handler struct {
	svc    *ledger.Service
	sender invite.Sender
}

func NewHandler(svc *ledger.Service, sender invite.Sender) *Handler {
	return &Handler{svc: svc, sender: sender}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/redeem", h.redeem)
	r.Get("/{ledgerID}", h.get)
	r.Delete("/{ledgerID}", h.delete)
	r.Post("/{ledgerID}/members", h.addMember)
	r.Delete("/{ledgerID}/members/{name}", h.removeMember)
	r.Post("/{ledgerID}/invitations", h.sendInvite)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ledgers, err := h.svc.List(r.Context(), middleware.User(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, ledgers)
}

type createRequest struct {
	Name    string      `json:"name"`
	Type    ledger.Type `json:"type"`
	Members []string    `json:"members"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Create(r.Context(), middleware.User(r.Context()), req.Type, req.Name, req.Members)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusCreated, l)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "ledgerID"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "ledger not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, l)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "ledgerID"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "ledger not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type redeemRequest struct {
	Code string `json:"code"`
}

type redeemResponse struct {
	Ledger        ledger.Ledger `json:"ledger"`
	AlreadyMember bool          `json:"alreadyMember"`
}

func (h *Handler) redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Redeem(r.Context(), middleware.User(r.Context()), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ledger.ErrCodeNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ledger.ErrNotJoinable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	respond(w, http.StatusOK, redeemResponse{Ledger: res.Ledger, AlreadyMember: res.AlreadyMember})
}

type memberRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.AddMember(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "ledgerID"), req.Name)
	if err != nil {
		h.respondMembershipError(w, err)
		return
	}
	respond(w, http.StatusOK, l)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.RemoveMember(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "ledgerID"), chi.URLParam(r, "name"))
	if err != nil {
		h.respondMembershipError(w, err)
		return
	}
	respond(w, http.StatusOK, l)
}

func (h *Handler) respondMembershipError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrPersonal),
		errors.Is(err, ledger.ErrDuplicate),
		errors.Is(err, ledger.ErrCreatorLocked),
		errors.Is(err, ledger.ErrLastMember):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type inviteRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (h *Handler) sendInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.To == "" {
		http.Error(w, "recipient is required", http.StatusBadRequest)
		return
	}

	caller := middleware.User(r.Context())
	l, err := h.svc.Get(r.Context(), caller, chi.URLParam(r, "ledgerID"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "ledger not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if l.Type != ledger.TypeFriend || l.InviteCode == "" {
		http.Error(w, ledger.ErrNotJoinable.Error(), http.StatusConflict)
		return
	}

	err = h.sender.SendInvite(r.Context(), invite.Invitation{
		To:         req.To,
		LedgerName: l.Name,
		InviteCode: l.InviteCode,
		InvitedBy:  caller,
		Message:    req.Message,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
