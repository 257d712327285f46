package employee

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bfstore/lojinha/internal/auth"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/importer"
)

type Handler struct {
	svc       *employee.Service
	importSvc *importer.Service
}

func NewHandler(svc *employee.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/me", h.me)
	r.Get("/{id}", h.get)

	r.With(auth.RequireAdmin).Group(func(r chi.Router) {
		r.Post("/", h.onboard)
		r.Post("/import", h.importRoster)
		r.Patch("/{id}/active", h.setActive)
	})
}

type onboardRequest struct {
	OwnerID string           `json:"owner_id"`
	Name    string           `json:"name"`
	Sector  string           `json:"sector"`
	Company employee.Company `json:"company"`
	PIN     string           `json:"pin,omitempty"`
}

type employeeResponse struct {
	ID            uuid.UUID        `json:"id"`
	OwnerID       string           `json:"owner_id"`
	Name          string           `json:"name"`
	Sector        string           `json:"sector"`
	Company       employee.Company `json:"company"`
	Active        bool             `json:"active"`
	CreditBalance int64            `json:"credit_balance"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:            e.ID,
		OwnerID:       e.OwnerID,
		Name:          e.Name,
		Sector:        e.Sector,
		Company:       e.Company,
		Active:        e.Active,
		CreditBalance: e.CreditBalance,
		CreatedAt:     e.CreatedAt,
	}
}

func toResponseList(employees []*employee.Employee) []employeeResponse {
	responses := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toResponse(e))
	}

	return responses
}

func (h *Handler) onboard(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Onboard(r.Context(), employee.OnboardParams{
		OwnerID: req.OwnerID,
		Name:    req.Name,
		Sector:  req.Sector,
		Company: req.Company,
		PIN:     req.PIN,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListFilter{}

	if s := r.URL.Query().Get("company"); s != "" {
		company := employee.Company(s)
		if !company.Valid() {
			http.Error(w, "invalid company", http.StatusBadRequest)
			return
		}

		filter.Company = &company
	}

	if r.URL.Query().Get("active") == "true" {
		filter.ActiveOnly = true
	}

	employees, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(employees)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	e, err := h.svc.GetByOwner(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importRoster(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), importer.FormatHR, file, h.svc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
