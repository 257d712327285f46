package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bfstore/lojinha/internal/auth"
	"github.com/bfstore/lojinha/internal/config"
	"github.com/bfstore/lojinha/internal/credit"
	creditStore "github.com/bfstore/lojinha/internal/credit/store"
	"github.com/bfstore/lojinha/internal/database"
	"github.com/bfstore/lojinha/internal/employee"
	employeeStore "github.com/bfstore/lojinha/internal/employee/store"
	lojinhaHttp "github.com/bfstore/lojinha/internal/http"
	creditHandler "github.com/bfstore/lojinha/internal/http/credit"
	employeeHandler "github.com/bfstore/lojinha/internal/http/employee"
	eventsHandler "github.com/bfstore/lojinha/internal/http/events"
	kioskHandler "github.com/bfstore/lojinha/internal/http/kiosk"
	purchaseHandler "github.com/bfstore/lojinha/internal/http/purchase"
	reportHandler "github.com/bfstore/lojinha/internal/http/report"
	"github.com/bfstore/lojinha/internal/importer"
	"github.com/bfstore/lojinha/internal/notify"
	"github.com/bfstore/lojinha/internal/purchase"
	purchaseStore "github.com/bfstore/lojinha/internal/purchase/store"
	"github.com/bfstore/lojinha/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	broadcaster := notify.NewBroadcaster()
	defer broadcaster.Close()

	var (
		employeeService = employee.NewService(employeeStore.New(db))
		purchaseService = purchase.NewService(purchaseStore.New(db), broadcaster)
		creditService   = credit.NewService(creditStore.New(db))
		importService   = importer.NewService()
		reportService   = report.NewService(report.NewSource(employeeService, purchaseService, creditService))
	)

	var (
		employeeH = employeeHandler.NewHandler(employeeService, importService)
		purchaseH = purchaseHandler.NewHandler(purchaseService)
		kioskH    = kioskHandler.NewHandler(employeeService, purchaseService)
		creditH   = creditHandler.NewHandler(creditService, employeeService)
		reportH   = reportHandler.NewHandler(reportService)
		eventsH   = eventsHandler.NewHandler(broadcaster)
	)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	router := lojinhaHttp.New(
		verifier, cfg.CORS.Origin,
		employeeH, purchaseH, kioskH, creditH, reportH, eventsH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
