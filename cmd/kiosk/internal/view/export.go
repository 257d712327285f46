package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/report"
)

type exportState int

const (
	exportStateOptions exportState = iota
	exportStateExporting
	exportStateResult
)

// ExportModel produces the monthly reconciliation file and writes it to
// the configured export directory.
type ExportModel struct {
	CommonModel
	reportService *report.Service

	state exportState
	err   error

	form    *huh.Form
	month   string
	company string
	format  string

	spinner spinner.Model
	written string
}

func NewExportModel(svc *report.Service, exportDir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		reportService: svc,
		month:         time.Now().Format("2006-01"),
		format:        string(report.FormatCSV),
		spinner:       s,
		written:       exportDir,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Exportar Relatório Mensal" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: voltar ao menu"
	case exportStateExporting:
		return "Exportando..."
	}

	return "Esc: voltar | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.written = result.path

		return m, nil
	}

	switch m.state {
	case exportStateOptions:
		return m.updateOptions(msg)
	case exportStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) buildForm() *huh.Form {
	months := make([]huh.Option[string], 0, 12)

	now := time.Now()
	for i := 0; i < 12; i++ {
		month := now.AddDate(0, -i, 0).Format("2006-01")
		months = append(months, huh.NewOption(month, month))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("month").
				Title("Mês de referência").
				Options(months...).
				Value(&m.month),

			huh.NewSelect[string]().
				Key("company").
				Title("Empresa").
				Options(
					huh.NewOption("Geral (todas)", ""),
					huh.NewOption("FA", string(employee.CompanyFA)),
					huh.NewOption("BF", string(employee.CompanyBF)),
				).
				Value(&m.company),

			huh.NewSelect[string]().
				Key("format").
				Title("Formato").
				Options(
					huh.NewOption("CSV (Excel)", string(report.FormatCSV)),
					huh.NewOption("Planilha XLSX", string(report.FormatWorkbook)),
				).
				Value(&m.format),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateOptions:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Gerando relatório...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Erro: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Relatório exportado!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("Arquivo: %s", m.written),
		),
	)
}

type exportResultMsg struct {
	path string
	err  error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd() tea.Cmd {
	exportDir := m.written
	month := m.month
	company := employee.Company(m.company)
	format := report.Format(m.format)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		ref, err := time.Parse("2006-01", month)
		if err != nil {
			return exportResultMsg{err: err}
		}

		export, err := m.reportService.Run(ctx, report.Options{
			Reference: ref,
			Company:   company,
			Format:    format,
		})
		if err != nil {
			return exportResultMsg{err: err}
		}

		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return exportResultMsg{err: err}
		}

		path := filepath.Join(exportDir, export.Filename)
		if err := os.WriteFile(path, export.Data, 0o644); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path}
	}
}
