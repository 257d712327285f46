package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/credit"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/purchase"
	"github.com/bfstore/lojinha/internal/report"
)

var august = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func activeEmployee(owner, name, sector string, company employee.Company, balance int64) *employee.Employee {
	return &employee.Employee{
		ID:            uuid.New(),
		OwnerID:       owner,
		Name:          name,
		Sector:        sector,
		Company:       company,
		Active:        true,
		CreditBalance: balance,
	}
}

func boughtAt(owner string, item catalog.Item, unitPrice int64, qty int, at time.Time) *purchase.Purchase {
	return &purchase.Purchase{
		ID:         uuid.New(),
		OwnerID:    owner,
		Item:       item,
		UnitPrice:  unitPrice,
		Qty:        qty,
		Total:      unitPrice * int64(qty),
		OccurredAt: at,
	}
}

// decodeSections parses the CSV output back into titled record groups.
func decodeSections(t *testing.T, data []byte) map[string][][]string {
	t.Helper()

	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "output must carry a UTF-8 BOM")

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	require.NoError(t, err)

	sections := make(map[string][][]string)

	var current string

	for _, rec := range records {
		if len(rec) == 1 && rec[0] != "" && sections[rec[0]] == nil && isTitle(rec[0]) {
			current = rec[0]
			sections[current] = [][]string{}

			continue
		}

		if len(rec) == 1 && rec[0] == "" {
			continue
		}

		require.NotEmpty(t, current, "data row before any section title")
		sections[current] = append(sections[current], rec)
	}

	return sections
}

func isTitle(s string) bool {
	switch s {
	case "Compras do Mês", "Resumo por Colaborador", "Saldos de Crédito", "Créditos do Mês":
		return true
	}

	return false
}

func TestService_Run_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	ana := activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 500)

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{ana}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{
		boughtAt("u1", catalog.ItemRedBull, 700, 2, august),
	}, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return([]*credit.LedgerEntry{
		{ID: uuid.New(), OwnerID: "u1", Amount: 2000, Note: "ajuste", OccurredAt: august},
	}, nil)

	svc := report.NewService(source)
	export, err := svc.Run(context.Background(), report.Options{
		Reference: august,
		Company:   employee.CompanyFA,
		Format:    report.FormatCSV,
	})
	require.NoError(t, err)

	assert.Equal(t, "lojinha_FA_2026-08.csv", export.Filename)
	assert.Zero(t, export.Anomalies)

	sections := decodeSections(t, export.Data)

	detailed := sections["Compras do Mês"]
	require.Len(t, detailed, 2, "header plus one row")
	assert.Equal(t, []string{"Data", "Empresa", "Nome", "Setor", "Item", "Qtd", "Preço Unit.", "Total", "ID"}, detailed[0])
	assert.Equal(t, []string{"15/08/2026 12:00", "FA", "Ana", "Vendas", "Red Bull", "2", "R$ 7,00", "R$ 14,00", "u1"}, detailed[1])

	summary := sections["Resumo por Colaborador"]
	require.Len(t, summary, 2)
	assert.Equal(t, []string{"FA", "Ana", "Vendas", "R$ 14,00", "u1"}, summary[1])

	balances := sections["Saldos de Crédito"]
	require.Len(t, balances, 2)
	assert.Equal(t, []string{"FA", "Ana", "Vendas", "R$ 5,00", "u1"}, balances[1])

	ledger := sections["Créditos do Mês"]
	require.Len(t, ledger, 2)
	assert.Equal(t, []string{"15/08/2026 12:00", "FA", "Ana", "Vendas", "R$ 20,00", "ajuste", "u1"}, ledger[1])
}

func TestService_Run_SumsStoredTotalsNotCatalogPrices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	ana := activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 0)

	// Snapshot price differs from the current catalog price for the item:
	// the summary must reflect the stored total.
	old := boughtAt("u1", catalog.ItemRedBull, 100, 2, august)

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{ana}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{old}, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := report.NewService(source)
	export, err := svc.Run(context.Background(), report.Options{Reference: august})
	require.NoError(t, err)

	summary := decodeSections(t, export.Data)["Resumo por Colaborador"]
	require.Len(t, summary, 2)
	assert.Equal(t, "R$ 2,00", summary[1][3])
}

func TestService_Run_GroupingKeyIncludesIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	// The directory knows the employee by the new name; the aggregation
	// key still comes from the enriched tuple, so two purchases enriched
	// identically collapse while a distinct tuple stays separate.
	ana := activeEmployee("u1", "Ana Souza", "Vendas", employee.CompanyFA, 0)
	bia := activeEmployee("u2", "Bia", "TI", employee.CompanyFA, 0)

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{ana, bia}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{
		boughtAt("u1", catalog.ItemDoceSalgadinho, 200, 1, august),
		boughtAt("u1", catalog.ItemRedBull, 700, 1, august),
		boughtAt("u2", catalog.ItemCapsulaCafe, 150, 1, august),
	}, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := report.NewService(source)
	export, err := svc.Run(context.Background(), report.Options{Reference: august})
	require.NoError(t, err)

	summary := decodeSections(t, export.Data)["Resumo por Colaborador"]
	require.Len(t, summary, 3, "header plus two employees")

	// Sorted by month total descending.
	assert.Equal(t, []string{"FA", "Ana Souza", "Vendas", "R$ 9,00", "u1"}, summary[1])
	assert.Equal(t, []string{"FA", "Bia", "TI", "R$ 1,50", "u2"}, summary[2])
}

func TestService_Run_EqualTotalsKeepFirstSeenOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{
		activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 0),
		activeEmployee("u2", "Bia", "TI", employee.CompanyFA, 0),
		activeEmployee("u3", "Caio", "RH", employee.CompanyFA, 0),
	}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{
		boughtAt("u2", catalog.ItemRedBull, 700, 1, august),
		boughtAt("u3", catalog.ItemRedBull, 700, 1, august),
		boughtAt("u1", catalog.ItemRedBull, 700, 1, august),
	}, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := report.NewService(source)
	export, err := svc.Run(context.Background(), report.Options{Reference: august})
	require.NoError(t, err)

	summary := decodeSections(t, export.Data)["Resumo por Colaborador"]
	require.Len(t, summary, 4)
	assert.Equal(t, "u2", summary[1][4])
	assert.Equal(t, "u3", summary[2][4])
	assert.Equal(t, "u1", summary[3][4])
}

func TestService_Run_UnmatchedOwnerStaysInDetailOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{
		activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 0),
	}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{
		boughtAt("u1", catalog.ItemRedBull, 700, 1, august),
		boughtAt("ghost", catalog.ItemDoceSalgadinho, 200, 3, august),
	}, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := report.NewService(source)
	export, err := svc.Run(context.Background(), report.Options{Reference: august})
	require.NoError(t, err)

	assert.Equal(t, 1, export.Anomalies)

	sections := decodeSections(t, export.Data)

	detailed := sections["Compras do Mês"]
	require.Len(t, detailed, 3, "unmatched rows are financial records and stay in the detail")
	assert.Equal(t, []string{"15/08/2026 12:00", "", "", "", "Doce/Salgadinho", "3", "R$ 2,00", "R$ 6,00", "ghost"}, detailed[2])

	summary := sections["Resumo por Colaborador"]
	require.Len(t, summary, 2, "grouping requires identity; the ghost row is excluded")
	assert.Equal(t, "u1", summary[1][4])
}

func TestService_Run_CompanyFilterDropsUnmatchedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{
		activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 0),
		activeEmployee("u2", "Bia", "TI", employee.CompanyBF, 0),
	}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{
		boughtAt("u1", catalog.ItemRedBull, 700, 1, august),
		boughtAt("u2", catalog.ItemRedBull, 700, 1, august),
		boughtAt("ghost", catalog.ItemRedBull, 700, 1, august),
	}, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := report.NewService(source)
	export, err := svc.Run(context.Background(), report.Options{
		Reference: august,
		Company:   employee.CompanyBF,
	})
	require.NoError(t, err)

	sections := decodeSections(t, export.Data)

	detailed := sections["Compras do Mês"]
	require.Len(t, detailed, 2)
	assert.Equal(t, "u2", detailed[1][8])

	balances := sections["Saldos de Crédito"]
	require.Len(t, balances, 2)
	assert.Equal(t, "u2", balances[1][4])
}

func TestService_Run_EmptyFilterEqualsUnionOfCompanies(t *testing.T) {
	employees := []*employee.Employee{
		activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 100),
		activeEmployee("u2", "Bia", "TI", employee.CompanyBF, 200),
	}
	purchases := []*purchase.Purchase{
		boughtAt("u1", catalog.ItemRedBull, 700, 1, august),
		boughtAt("u2", catalog.ItemDoceSalgadinho, 200, 2, august),
	}

	run := func(company employee.Company) map[string][][]string {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		source := report.NewMockSource(ctrl)
		source.EXPECT().ListEmployees(gomock.Any(), true).Return(employees, nil)
		source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return(purchases, nil)
		source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

		export, err := report.NewService(source).Run(context.Background(), report.Options{
			Reference: august,
			Company:   company,
		})
		require.NoError(t, err)

		return decodeSections(t, export.Data)
	}

	all := run("")
	fa := run(employee.CompanyFA)
	bf := run(employee.CompanyBF)

	for _, title := range []string{"Compras do Mês", "Resumo por Colaborador", "Saldos de Crédito"} {
		union := append([][]string{}, fa[title][1:]...)
		union = append(union, bf[title][1:]...)
		assert.ElementsMatch(t, all[title][1:], union, "section %q", title)
	}
}

func TestService_Run_FetchFailureAbortsPipeline(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name      string
		setupMock func(m *report.MockSource)
	}{
		{
			name: "Employees",
			setupMock: func(m *report.MockSource) {
				m.EXPECT().ListEmployees(gomock.Any(), true).Return(nil, boom)
			},
		},
		{
			name: "Purchases",
			setupMock: func(m *report.MockSource) {
				m.EXPECT().ListEmployees(gomock.Any(), true).Return(nil, nil)
				m.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return(nil, boom)
			},
		},
		{
			name: "Ledger",
			setupMock: func(m *report.MockSource) {
				m.EXPECT().ListEmployees(gomock.Any(), true).Return(nil, nil)
				m.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, boom)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := report.NewMockSource(ctrl)
			tt.setupMock(source)

			export, err := report.NewService(source).Run(context.Background(), report.Options{Reference: august})

			require.ErrorIs(t, err, boom)
			assert.Nil(t, export, "no partial report on fetch failure")
		})
	}
}

func TestService_Run_GeneralExportFilename(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)
	source.EXPECT().ListEmployees(gomock.Any(), true).Return(nil, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return(nil, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

	export, err := report.NewService(source).Run(context.Background(), report.Options{
		Reference: time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC),
		Format:    report.FormatWorkbook,
	})
	require.NoError(t, err)

	assert.Equal(t, "lojinha_GERAL_2025-12.xlsx", export.Filename)
}

func TestService_Run_CSVQuotingRoundTrips(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	nasty := `meio; "aspas"` + "\nsegunda linha"

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{
		activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 0),
	}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return(nil, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return([]*credit.LedgerEntry{
		{ID: uuid.New(), OwnerID: "u1", Amount: 100, Note: nasty, OccurredAt: august},
	}, nil)

	export, err := report.NewService(source).Run(context.Background(), report.Options{Reference: august})
	require.NoError(t, err)

	ledger := decodeSections(t, export.Data)["Créditos do Mês"]
	require.Len(t, ledger, 2)
	assert.Equal(t, nasty, ledger[1][5], "separator, quote and newline must survive the round trip")
}

func TestParseFormat(t *testing.T) {
	got, err := report.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, report.FormatCSV, got)

	got, err = report.ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, report.FormatWorkbook, got)

	_, err = report.ParseFormat("pdf")
	assert.Error(t, err)
}
