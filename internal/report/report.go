package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ColumnKind drives cell formatting at serialization time; section rows
// carry raw values (cents, time.Time) until then.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindMoney
	KindDate
)

type Column struct {
	Name string
	Kind ColumnKind
}

// Section is one named table of the assembled report. The CSV strategy
// renders sections stacked with blank separators; the workbook strategy
// gives each its own sheet.
type Section struct {
	Title   string
	Columns []Column
	Rows    [][]any
}

const dateLayout = "02/01/2006 15:04"

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// formatBRL renders cents in the destination locale's currency format.
func formatBRL(cents int64) string {
	return ptBR.Sprintf("R$ %.2f", float64(cents)/100)
}
