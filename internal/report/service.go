package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/credit"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/metrics"
	"github.com/bfstore/lojinha/internal/purchase"
)

// Format selects the serialization strategy. The assembled data is the
// same either way.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatWorkbook Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatWorkbook, nil
	}

	return "", fmt.Errorf("invalid format %q (use csv or xlsx)", s)
}

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type Source interface {
	ListEmployees(ctx context.Context, activeOnly bool) ([]*employee.Employee, error)
	ListPurchases(ctx context.Context, period Period) ([]*purchase.Purchase, error)
	ListCreditLedger(ctx context.Context, period Period) ([]*credit.LedgerEntry, error)
}

type Options struct {
	// Reference picks the month to report on; zero means now.
	Reference time.Time
	// Company restricts every section to one company; empty means all
	// (the "Geral" export).
	Company employee.Company
	Format  Format
}

// Export is the finished report. Writing Data somewhere is the caller's
// job; the pipeline performs no I/O.
type Export struct {
	Filename string
	Data     []byte
	Period   Period
	// Anomalies counts purchase and ledger rows whose owner is missing
	// from the active employee directory. They stay in the detailed
	// sections with blank identity and are excluded from grouped and
	// company-filtered views.
	Anomalies int
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// enriched rows carry the owner identity attached by the join stage.
// known is false when the owner has no active employee record.
type enrichedPurchase struct {
	p       *purchase.Purchase
	name    string
	sector  string
	company employee.Company
	known   bool
}

type enrichedGrant struct {
	g       *credit.LedgerEntry
	name    string
	sector  string
	company employee.Company
	known   bool
}

type summaryRow struct {
	ownerID string
	name    string
	sector  string
	company employee.Company
	total   int64
}

// Run executes the pipeline once: fetch, join, aggregate, filter,
// assemble, serialize. Any fetch failure aborts the whole export.
func (s *Service) Run(ctx context.Context, opts Options) (*Export, error) {
	format := opts.Format
	if format == "" {
		format = FormatCSV
	}

	ref := opts.Reference
	if ref.IsZero() {
		ref = time.Now()
	}

	period := MonthOf(ref)

	employees, err := s.source.ListEmployees(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	purchases, err := s.source.ListPurchases(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}

	grants, err := s.source.ListCreditLedger(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("listing credit ledger: %w", err)
	}

	byOwner := make(map[string]*employee.Employee, len(employees))
	for _, e := range employees {
		byOwner[e.OwnerID] = e
	}

	detailed, anomalies := enrichPurchases(purchases, byOwner)
	ledger, ledgerAnomalies := enrichGrants(grants, byOwner)
	anomalies += ledgerAnomalies

	summary := summarize(detailed)

	if opts.Company != "" {
		detailed = filterPurchases(detailed, opts.Company)
		ledger = filterGrants(ledger, opts.Company)
		summary = filterSummary(summary, opts.Company)
		employees = filterEmployees(employees, opts.Company)
	}

	sections := assemble(detailed, summary, employees, ledger)

	var data []byte

	switch format {
	case FormatCSV:
		data, err = encodeCSV(sections)
	case FormatWorkbook:
		data, err = encodeWorkbook(sections)
	default:
		return nil, fmt.Errorf("invalid format %q (use csv or xlsx)", format)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	metrics.ReportsExported.WithLabelValues(string(format)).Inc()

	return &Export{
		Filename:  fileName(opts.Company, period, format),
		Data:      data,
		Period:    period,
		Anomalies: anomalies,
	}, nil
}

func enrichPurchases(purchases []*purchase.Purchase, byOwner map[string]*employee.Employee) ([]enrichedPurchase, int) {
	rows := make([]enrichedPurchase, 0, len(purchases))

	anomalies := 0

	for _, p := range purchases {
		row := enrichedPurchase{p: p}

		if e, ok := byOwner[p.OwnerID]; ok {
			row.name = e.Name
			row.sector = e.Sector
			row.company = e.Company
			row.known = true
		} else {
			// Financial records are never dropped from the detailed
			// view; the row keeps blank identity fields instead.
			anomalies++
		}

		rows = append(rows, row)
	}

	return rows, anomalies
}

func enrichGrants(grants []*credit.LedgerEntry, byOwner map[string]*employee.Employee) ([]enrichedGrant, int) {
	rows := make([]enrichedGrant, 0, len(grants))

	anomalies := 0

	for _, g := range grants {
		row := enrichedGrant{g: g}

		if e, ok := byOwner[g.OwnerID]; ok {
			row.name = e.Name
			row.sector = e.Sector
			row.company = e.Company
			row.known = true
		} else {
			anomalies++
		}

		rows = append(rows, row)
	}

	return rows, anomalies
}

// summarize produces one row per (ownerID, name, sector, company) tuple as
// observed at aggregation time; a renamed employee purchasing under both
// names yields two rows. Totals are the stored purchase totals, never
// recomputed from the current catalog. Output is sorted by total
// descending; equal totals keep first-occurrence order.
func summarize(detailed []enrichedPurchase) []summaryRow {
	type groupKey struct {
		ownerID string
		name    string
		sector  string
		company employee.Company
	}

	index := make(map[groupKey]int)

	var rows []summaryRow

	for _, row := range detailed {
		if !row.known {
			// Grouping needs identity; anomalous rows stay in the
			// detailed section only.
			continue
		}

		k := groupKey{
			ownerID: row.p.OwnerID,
			name:    row.name,
			sector:  row.sector,
			company: row.company,
		}

		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i

			rows = append(rows, summaryRow{
				ownerID: k.ownerID,
				name:    k.name,
				sector:  k.sector,
				company: k.company,
			})
		}

		rows[i].total += row.p.Total
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].total > rows[j].total
	})

	return rows
}

func filterPurchases(rows []enrichedPurchase, company employee.Company) []enrichedPurchase {
	out := make([]enrichedPurchase, 0, len(rows))

	for _, row := range rows {
		if row.known && row.company == company {
			out = append(out, row)
		}
	}

	return out
}

func filterGrants(rows []enrichedGrant, company employee.Company) []enrichedGrant {
	out := make([]enrichedGrant, 0, len(rows))

	for _, row := range rows {
		if row.known && row.company == company {
			out = append(out, row)
		}
	}

	return out
}

func filterSummary(rows []summaryRow, company employee.Company) []summaryRow {
	out := make([]summaryRow, 0, len(rows))

	for _, row := range rows {
		if row.company == company {
			out = append(out, row)
		}
	}

	return out
}

func filterEmployees(employees []*employee.Employee, company employee.Company) []*employee.Employee {
	out := make([]*employee.Employee, 0, len(employees))

	for _, e := range employees {
		if e.Company == company {
			out = append(out, e)
		}
	}

	return out
}

// assemble arranges the pipeline output into the four fixed sections.
func assemble(detailed []enrichedPurchase, summary []summaryRow, employees []*employee.Employee, ledger []enrichedGrant) []Section {
	purchasesSec := Section{
		Title: "Compras do Mês",
		Columns: []Column{
			{Name: "Data", Kind: KindDate},
			{Name: "Empresa"},
			{Name: "Nome"},
			{Name: "Setor"},
			{Name: "Item"},
			{Name: "Qtd", Kind: KindInt},
			{Name: "Preço Unit.", Kind: KindMoney},
			{Name: "Total", Kind: KindMoney},
			{Name: "ID"},
		},
	}

	for _, row := range detailed {
		purchasesSec.Rows = append(purchasesSec.Rows, []any{
			row.p.OccurredAt,
			string(row.company),
			row.name,
			row.sector,
			catalog.Label(row.p.Item),
			row.p.Qty,
			row.p.UnitPrice,
			row.p.Total,
			row.p.OwnerID,
		})
	}

	summarySec := Section{
		Title: "Resumo por Colaborador",
		Columns: []Column{
			{Name: "Empresa"},
			{Name: "Nome"},
			{Name: "Setor"},
			{Name: "Total do Mês", Kind: KindMoney},
			{Name: "ID"},
		},
	}

	for _, row := range summary {
		summarySec.Rows = append(summarySec.Rows, []any{
			string(row.company),
			row.name,
			row.sector,
			row.total,
			row.ownerID,
		})
	}

	// Balances reflect export time, not period end.
	balancesSec := Section{
		Title: "Saldos de Crédito",
		Columns: []Column{
			{Name: "Empresa"},
			{Name: "Nome"},
			{Name: "Setor"},
			{Name: "Saldo Atual", Kind: KindMoney},
			{Name: "ID"},
		},
	}

	for _, e := range employees {
		balancesSec.Rows = append(balancesSec.Rows, []any{
			string(e.Company),
			e.Name,
			e.Sector,
			e.CreditBalance,
			e.OwnerID,
		})
	}

	ledgerSec := Section{
		Title: "Créditos do Mês",
		Columns: []Column{
			{Name: "Data", Kind: KindDate},
			{Name: "Empresa"},
			{Name: "Nome"},
			{Name: "Setor"},
			{Name: "Valor", Kind: KindMoney},
			{Name: "Observação"},
			{Name: "ID"},
		},
	}

	for _, row := range ledger {
		ledgerSec.Rows = append(ledgerSec.Rows, []any{
			row.g.OccurredAt,
			string(row.company),
			row.name,
			row.sector,
			row.g.Amount,
			row.g.Note,
			row.g.OwnerID,
		})
	}

	return []Section{purchasesSec, summarySec, balancesSec, ledgerSec}
}

func fileName(company employee.Company, period Period, format Format) string {
	scope := "GERAL"
	if company != "" {
		scope = string(company)
	}

	ext := "csv"
	if format == FormatWorkbook {
		ext = "xlsx"
	}

	return fmt.Sprintf("lojinha_%s_%s.%s", scope, period.Label(), ext)
}
