package kiosk

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/purchase"
)

// Handler serves the shared store terminal. The device has no user
// session; every purchase authenticates with the employee's PIN.
type Handler struct {
	employees *employee.Service
	purchases *purchase.Service
}

func NewHandler(employees *employee.Service, purchases *purchase.Service) *Handler {
	return &Handler{employees: employees, purchases: purchases}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/purchases", h.createPurchase)
}

type kioskPurchaseRequest struct {
	OwnerID string       `json:"owner_id"`
	PIN     string       `json:"pin"`
	Item    catalog.Item `json:"item"`
	Qty     int          `json:"qty"`
}

type kioskPurchaseResponse struct {
	Item  string `json:"item"`
	Qty   int    `json:"qty"`
	Total int64  `json:"total"`
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req kioskPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.employees.VerifyPIN(r.Context(), req.OwnerID, req.PIN); err != nil {
		// Wrong PIN and unknown owner answer identically.
		if errors.Is(err, employee.ErrBadPIN) || errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "pin verification failed", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	p, err := h.purchases.Create(r.Context(), purchase.CreateParams{
		OwnerID: req.OwnerID,
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

	if err := json.NewEncoder(w).Encode(kioskPurchaseResponse{
		Item:  catalog.Label(p.Item),
		Qty:   p.Qty,
		Total: p.Total,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
