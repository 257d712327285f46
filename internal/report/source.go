package report

import (
	"context"

	"github.com/bfstore/lojinha/internal/credit"
	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/purchase"
)

// serviceSource adapts the domain services to the pipeline's Source.
type serviceSource struct {
	employees *employee.Service
	purchases *purchase.Service
	credits   *credit.Service
}

func NewSource(employees *employee.Service, purchases *purchase.Service, credits *credit.Service) Source {
	return &serviceSource{
		employees: employees,
		purchases: purchases,
		credits:   credits,
	}
}

func (s *serviceSource) ListEmployees(ctx context.Context, activeOnly bool) ([]*employee.Employee, error) {
	return s.employees.List(ctx, employee.ListFilter{ActiveOnly: activeOnly})
}

func (s *serviceSource) ListPurchases(ctx context.Context, period Period) ([]*purchase.Purchase, error) {
	return s.purchases.List(ctx, purchase.ListFilter{
		Start: &period.Start,
		End:   &period.End,
	})
}

func (s *serviceSource) ListCreditLedger(ctx context.Context, period Period) ([]*credit.LedgerEntry, error) {
	return s.credits.List(ctx, credit.ListFilter{
		Start: &period.Start,
		End:   &period.End,
	})
}
