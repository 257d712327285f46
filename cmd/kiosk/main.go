package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/bfstore/lojinha/cmd/kiosk/internal/view"
	"github.com/bfstore/lojinha/internal/config"
	"github.com/bfstore/lojinha/internal/credit"
	creditStore "github.com/bfstore/lojinha/internal/credit/store"
	"github.com/bfstore/lojinha/internal/database"
	"github.com/bfstore/lojinha/internal/employee"
	employeeStore "github.com/bfstore/lojinha/internal/employee/store"
	"github.com/bfstore/lojinha/internal/purchase"
	purchaseStore "github.com/bfstore/lojinha/internal/purchase/store"
	"github.com/bfstore/lojinha/internal/report"
)

type model struct {
	employeeService *employee.Service
	purchaseService *purchase.Service
	reportService   *report.Service
	exportDir       string

	currentView View

	purchaseView view.PurchaseModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewPurchase View = 1
	ViewExport   View = 2
)

func initialModel() model {
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

	employeeSvc := employee.NewService(employeeStore.New(db))
	// The terminal has no dashboard attached, so purchases go out without
	// a broadcaster.
	purchaseSvc := purchase.NewService(purchaseStore.New(db), nil)
	creditSvc := credit.NewService(creditStore.New(db))
	reportSvc := report.NewService(report.NewSource(employeeSvc, purchaseSvc, creditSvc))

	return model{
		employeeService: employeeSvc,
		purchaseService: purchaseSvc,
		reportService:   reportSvc,
		exportDir:       cfg.Kiosk.ExportDir,
		currentView:     ViewMenu,
		purchaseView:    view.NewPurchaseModel(employeeSvc, purchaseSvc),
		exportView:      view.NewExportModel(reportSvc, cfg.Kiosk.ExportDir),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPurchase
				m.purchaseView = view.NewPurchaseModel(m.employeeService, m.purchaseService)

				return m, m.purchaseView.Init()
			case "2":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.reportService, m.exportDir)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPurchase:
		var newModel tea.Model
		newModel, cmd = m.purchaseView.Update(msg)
		m.purchaseView = newModel.(view.PurchaseModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Lojinha BF\n\n" +
				"1. Registrar Compra\n" +
				"2. Exportar Relatório Mensal\n\n" +
				"q. Sair",
		)
	case ViewPurchase:
		return m.purchaseView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run kiosk", "error", err)
		os.Exit(1)
	}
}
