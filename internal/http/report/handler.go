package report

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/report"
)

const (
	contentTypeCSV      = "text/csv; charset=utf-8"
	contentTypeWorkbook = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly", h.monthly)
}

// monthly streams the reconciliation export as a file download.
// Query params: month=YYYY-MM (default current), company=FA|BF (default
// all), format=csv|xlsx (default csv).
func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var company employee.Company

	if s := r.URL.Query().Get("company"); s != "" {
		company = employee.Company(s)
		if !company.Valid() {
			http.Error(w, "invalid company", http.StatusBadRequest)
			return
		}
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

	export, err := h.svc.Run(r.Context(), report.Options{
		Reference: ref,
		Company:   company,
		Format:    format,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	contentType := contentTypeCSV
	if format == report.FormatWorkbook {
		contentType = contentTypeWorkbook
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	w.Header().Set("X-Report-Anomalies", strconv.Itoa(export.Anomalies))

	_, _ = w.Write(export.Data)
}
