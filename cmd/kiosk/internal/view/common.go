package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

const dbTimeout = 5 * time.Second

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders cents as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(cents int64) string {
	return ptBR.Sprintf("R$ %.2f", float64(cents)/100.0)
}

// FormatDate formats a time.Time into DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
