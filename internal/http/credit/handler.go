package credit

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bfstore/lojinha/internal/auth"
	"github.com/bfstore/lojinha/internal/credit"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/report"
)

type Handler struct {
	svc       *credit.Service
	employees *employee.Service
}

func NewHandler(svc *credit.Service, employees *employee.Service) *Handler {
	return &Handler{svc: svc, employees: employees}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/balance", h.balance)

	r.With(auth.RequireAdmin).Post("/", h.grant)
}

type grantRequest struct {
	OwnerID string `json:"owner_id"`
	Amount  int64  `json:"amount"`
	Note    string `json:"note,omitempty"`
}

type ledgerEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Amount     int64     `json:"amount"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toResponse(e *credit.LedgerEntry) ledgerEntryResponse {
	return ledgerEntryResponse{
		ID:         e.ID,
		OwnerID:    e.OwnerID,
		Amount:     e.Amount,
		Note:       e.Note,
		OccurredAt: e.OccurredAt,
	}
}

func (h *Handler) grant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Grant(r.Context(), credit.GrantParams{
		OwnerID: req.OwnerID,
		Amount:  req.Amount,
		Note:    req.Note,
	})
	if err != nil {
		if errors.Is(err, credit.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type balanceResponse struct {
	OwnerID       string `json:"owner_id"`
	CreditBalance int64  `json:"credit_balance"`
}

// balance returns the caller's current credit balance. Admins may pass
// owner_id to check someone else's.
func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	owner := claims.Subject

	if s := r.URL.Query().Get("owner_id"); s != "" && s != owner {
		if !claims.Admin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}

		owner = s
	}

	e, err := h.employees.GetByOwner(r.Context(), owner)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(balanceResponse{
		OwnerID:       e.OwnerID,
		CreditBalance: e.CreditBalance,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns the caller's grants for one month. Admins may pass owner_id
// to inspect another ledger.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	owner := claims.Subject

	if s := r.URL.Query().Get("owner_id"); s != "" && s != owner {
		if !claims.Admin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}

		owner = s
	}

	ref := time.Now()

	if s := r.URL.Query().Get("month"); s != "" {
		t, err := time.Parse("2006-01", s)
		if err != nil {
			http.Error(w, "invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}

		ref = t
	}

	period := report.MonthOf(ref)

	entries, err := h.svc.List(r.Context(), credit.ListFilter{
		OwnerID: &owner,
		Start:   &period.Start,
		End:     &period.End,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	responses := make([]ledgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toResponse(e))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(responses); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
