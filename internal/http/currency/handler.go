package currency

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/duartefn/moneybook/internal/currency"
)

type Handler struct {
	svc *currency.Service
}

func NewHandler(svc *currency.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/rates", h.rates)
	r.Get("/reporting", h.reporting)
	r.Put("/reporting", h.setReporting)
}

type ratesResponse struct {
	Reporting string                     `json:"reporting"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

func (h *Handler) rates(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, ratesResponse{
		Reporting: h.svc.Reporting(),
		Rates:     h.svc.Rates(r.Context()),
	})
}

type reportingResponse struct {
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
}

func (h *Handler) reporting(w http.ResponseWriter, r *http.Request) {
	code := h.svc.Reporting()
	respond(w, http.StatusOK, reportingResponse{Currency: code, Symbol: currency.Symbol(code)})
}

type setReportingRequest struct {
	Currency string `json:"currency"`
}

func (h *Handler) setReporting(w http.ResponseWriter, r *http.Request) {
	var req setReportingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Currency) == "" {
		http.Error(w, "currency is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetReporting(r.Context(), req.Currency); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	code := h.svc.Reporting()
	respond(w, http.StatusOK, reportingResponse{Currency: code, Symbol: currency.Symbol(code)})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
