package purchase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bfstore/lojinha/internal/auth"
	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/purchase"
	"github.com/bfstore/lojinha/internal/report"
)

type Handler struct {
	svc *purchase.Service
}

func NewHandler(svc *purchase.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type createPurchaseRequest struct {
	Item catalog.Item `json:"item"`
	Qty  int          `json:"qty"`
}

type purchaseResponse struct {
	ID         uuid.UUID    `json:"id"`
	OwnerID    string       `json:"owner_id"`
	Item       catalog.Item `json:"item"`
	Label      string       `json:"label"`
	UnitPrice  int64        `json:"unit_price"`
	Qty        int          `json:"qty"`
	Total      int64        `json:"total"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func toResponse(p *purchase.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Item:       p.Item,
		Label:      catalog.Label(p.Item),
		UnitPrice:  p.UnitPrice,
		Qty:        p.Qty,
		Total:      p.Total,
		OccurredAt: p.OccurredAt,
	}
}

func toResponseList(purchases []*purchase.Purchase) []purchaseResponse {
	responses := make([]purchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		responses = append(responses, toResponse(p))
	}

	return responses
}

// create registers a purchase for the authenticated caller. The owner
// always comes from the token, never from the body.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), purchase.CreateParams{
		OwnerID: claims.Subject,
		Item:    req.Item,
		Qty:     req.Qty,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownItem) || errors.Is(err, purchase.ErrInvalidQty) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns the caller's purchases for one month (current month when
// unspecified). Admins may pass owner_id to inspect someone else's history.
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

	purchases, err := h.svc.List(r.Context(), purchase.ListFilter{
		OwnerID: &owner,
		Start:   &period.Start,
		End:     &period.End,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(purchases)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
