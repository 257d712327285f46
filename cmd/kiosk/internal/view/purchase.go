package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/purchase"
)

type purchaseState int

const (
	purchaseStatePick purchaseState = iota
	purchaseStatePIN
	purchaseStateOrder
	purchaseStateSubmitting
	purchaseStateReceipt
)

// PurchaseModel walks an employee through buying at the shared terminal:
// find yourself in the roster, confirm your PIN, pick an item, done.
type PurchaseModel struct {
	CommonModel
	employeeService *employee.Service
	purchaseService *purchase.Service

	state purchaseState
	err   error

	filter    textinput.Model
	table     table.Model
	employees []*employee.Employee
	visible   []*employee.Employee
	selected  *employee.Employee

	form    *huh.Form
	pin     string
	item    string
	qty     string
	spinner spinner.Model
	receipt *purchase.Purchase
	balance int64
}

func NewPurchaseModel(employeeSvc *employee.Service, purchaseSvc *purchase.Service) PurchaseModel {
	filter := textinput.New()
	filter.Placeholder = "Digite seu nome..."
	filter.Focus()

	columns := []table.Column{
		{Title: "Nome", Width: 30},
		{Title: "Setor", Width: 20},
		{Title: "Empresa", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return PurchaseModel{
		employeeService: employeeSvc,
		purchaseService: purchaseSvc,
		filter:          filter,
		table:           t,
		qty:             "1",
		spinner:         sp,
	}
}

func (m PurchaseModel) Title() string { return "Registrar Compra" }

func (m PurchaseModel) ShortHelp() string {
	switch m.state {
	case purchaseStatePick:
		return "↑/↓: navegar | Enter: selecionar | Esc: voltar"
	case purchaseStateReceipt:
		return "Esc: voltar ao menu"
	}

	return "Esc: voltar | Enter: confirmar"
}

func (m PurchaseModel) Init() tea.Cmd {
	return m.loadEmployeesCmd()
}

func (m PurchaseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadEmployeesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.employees = msg.employees
		m.applyFilter()

		return m, nil

	case purchaseResultMsg:
		m.state = purchaseStateReceipt
		m.err = msg.err
		m.receipt = msg.purchase
		m.balance = msg.balance

		return m, nil
	}

	switch m.state {
	case purchaseStatePick:
		return m.updatePick(msg)
	case purchaseStatePIN, purchaseStateOrder:
		return m.updateForm(msg)
	case purchaseStateSubmitting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case purchaseStateReceipt:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m PurchaseModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.visible) {
				return m, nil
			}

			m.selected = m.visible[idx]
			m.pin = ""
			m.form = m.buildPINForm()
			m.state = purchaseStatePIN

			return m, m.form.Init()
		case tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)

			return m, cmd
		}
	}

	var cmd tea.Cmd

	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()

	return m, cmd
}

func (m PurchaseModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = purchaseStatePick
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == purchaseStatePIN {
		m.item = string(catalog.Items()[0])
		m.qty = "1"
		m.form = m.buildOrderForm()
		m.state = purchaseStateOrder

		return m, m.form.Init()
	}

	m.state = purchaseStateSubmitting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.submitCmd())
}

func (m PurchaseModel) buildPINForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pin").
				Title(fmt.Sprintf("Olá, %s! Digite seu PIN", m.selected.Name)).
				EchoMode(huh.EchoModePassword).
				Value(&m.pin).
				Validate(func(s string) error {
					if len(s) < 4 {
						return fmt.Errorf("pin muito curto")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m PurchaseModel) buildOrderForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(catalog.Items()))

	for _, item := range catalog.Items() {
		price, _ := catalog.Price(item)
		label := fmt.Sprintf("%s  %s", catalog.Label(item), FormatBRL(price))
		options = append(options, huh.NewOption(label, string(item)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("item").
				Title("O que vai ser?").
				Options(options...).
				Value(&m.item),

			huh.NewInput().
				Key("qty").
				Title("Quantidade").
				Value(&m.qty).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("quantidade inválida")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *PurchaseModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))

	m.visible = m.visible[:0]

	for _, e := range m.employees {
		if query == "" || strings.Contains(strings.ToLower(e.Name), query) {
			m.visible = append(m.visible, e)
		}
	}

	rows := make([]table.Row, 0, len(m.visible))
	for _, e := range m.visible {
		rows = append(rows, table.Row{e.Name, e.Sector, string(e.Company)})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m PurchaseModel) View() string {
	switch m.state {
	case purchaseStatePick:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Erro: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				m.filter.View(),
				"",
				m.table.View(),
			),
		)

	case purchaseStatePIN, purchaseStateOrder:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case purchaseStateSubmitting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Registrando compra...", m.spinner.View()),
		)

	case purchaseStateReceipt:
		return m.viewReceipt()
	}

	return ""
}

func (m PurchaseModel) viewReceipt() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Erro: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Compra registrada!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%s x%d", catalog.Label(m.receipt.Item), m.receipt.Qty),
			fmt.Sprintf("Total: %s", FormatBRL(m.receipt.Total)),
			fmt.Sprintf("Saldo de crédito: %s", FormatBRL(m.balance)),
		),
	)
}

// Messages

type loadEmployeesMsg struct {
	employees []*employee.Employee
	err       error
}

func (m PurchaseModel) loadEmployeesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		employees, err := m.employeeService.List(ctx, employee.ListFilter{ActiveOnly: true})

		return loadEmployeesMsg{employees: employees, err: err}
	}
}

type purchaseResultMsg struct {
	purchase *purchase.Purchase
	balance  int64
	err      error
}

func (m PurchaseModel) submitCmd() tea.Cmd {
	owner := m.selected.OwnerID
	pin := m.pin
	item := catalog.Item(m.item)
	qty, _ := strconv.Atoi(strings.TrimSpace(m.qty))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.employeeService.VerifyPIN(ctx, owner, pin); err != nil {
			return purchaseResultMsg{err: err}
		}

		p, err := m.purchaseService.Create(ctx, purchase.CreateParams{
			OwnerID: owner,
			Item:    item,
			Qty:     qty,
		})
		if err != nil {
			return purchaseResultMsg{err: err}
		}

		// Re-read for the receipt: settlement may have consumed credit.
		e, err := m.employeeService.GetByOwner(ctx, owner)
		if err != nil {
			return purchaseResultMsg{purchase: p}
		}

		return purchaseResultMsg{purchase: p, balance: e.CreditBalance}
	}
}
