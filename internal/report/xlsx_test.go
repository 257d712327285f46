package report_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/credit"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/purchase"
	"github.com/bfstore/lojinha/internal/report"
)

func TestService_Run_WorkbookSheets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockSource(ctrl)

	source.EXPECT().ListEmployees(gomock.Any(), true).Return([]*employee.Employee{
		activeEmployee("u1", "Ana", "Vendas", employee.CompanyFA, 500),
	}, nil)
	source.EXPECT().ListPurchases(gomock.Any(), gomock.Any()).Return([]*purchase.Purchase{
		boughtAt("u1", catalog.ItemRedBull, 700, 2, august),
	}, nil)
	source.EXPECT().ListCreditLedger(gomock.Any(), gomock.Any()).Return([]*credit.LedgerEntry{
		{ID: uuid.New(), OwnerID: "u1", Amount: 2000, Note: "ajuste", OccurredAt: august},
	}, nil)

	export, err := report.NewService(source).Run(context.Background(), report.Options{
		Reference: august,
		Format:    report.FormatWorkbook,
	})
	require.NoError(t, err)
	assert.Equal(t, "lojinha_GERAL_2026-08.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()

	// One named sheet per section, in assembly order.
	assert.Equal(t, []string{
		"Compras do Mês",
		"Resumo por Colaborador",
		"Saldos de Crédito",
		"Créditos do Mês",
	}, f.GetSheetList())

	name, err := f.GetCellValue("Compras do Mês", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	item, err := f.GetCellValue("Compras do Mês", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Red Bull", item)

	// Money cells hold the raw decimal; formatting comes from the style.
	total, err := f.GetCellValue("Compras do Mês", "H2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "14", total)

	balance, err := f.GetCellValue("Saldos de Crédito", "D2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "5", balance)

	header, err := f.GetCellValue("Resumo por Colaborador", "D1")
	require.NoError(t, err)
	assert.Equal(t, "Total do Mês", header)
}
