package report_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bfstore/lojinha/internal/credit"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/purchase"
	"github.com/bfstore/lojinha/internal/report"

	handler "github.com/bfstore/lojinha/internal/http/report"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)

	source := report.NewMockSource(ctrl)
	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{}, nil).AnyTimes()
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{}, nil).AnyTimes()
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return([]*credit.LedgerEntry{}, nil).AnyTimes()

	r := chi.NewRouter()
	r.Route("/reports", handler.NewHandler(report.NewService(source)).Routes)

	return r
}

func TestHandler_Monthly_CSV(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/monthly?month=2026-08", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="lojinha_GERAL_2026-08.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "0", rec.Header().Get("X-Report-Anomalies"))

	// UTF-8 BOM so Excel opens the file with accents intact.
	body := rec.Body.Bytes()
	require.True(t, len(body) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])
}

func TestHandler_Monthly_CompanyScopedWorkbook(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/monthly?month=2026-08&company=FA&format=xlsx", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="lojinha_FA_2026-08.xlsx"`, rec.Header().Get("Content-Disposition"))
}

func TestHandler_Monthly_BadParams(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name string
		url  string
	}{
		{name: "BadFormat", url: "/reports/monthly?format=pdf"},
		{name: "BadCompany", url: "/reports/monthly?company=XX"},
		{name: "BadMonth", url: "/reports/monthly?month=08-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
