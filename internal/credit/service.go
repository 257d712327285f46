package credit

import (
	"context"
	"strings"
	"time"

	"github.com/bfstore/lojinha/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=credit
type Repository interface {
	// CreateGrant appends the ledger row and increments the owner's
	// balance in one database transaction.
	CreateGrant(ctx context.Context, e *LedgerEntry) error

	ListGrants(ctx context.Context, filter ListFilter) ([]*LedgerEntry, error)
}

type ListFilter struct {
	OwnerID *string
	// Start is inclusive, End exclusive.
	Start *time.Time
	End   *time.Time
}

type GrantParams struct {
	OwnerID string
	Amount  int64 // cents
	Note    string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Grant issues credit to an employee. Only positive amounts exist in the
// ledger; debits have no ledger representation.
func (s *Service) Grant(ctx context.Context, params GrantParams) (*LedgerEntry, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	e := &LedgerEntry{
		OwnerID: params.OwnerID,
		Amount:  params.Amount,
		Note:    strings.TrimSpace(params.Note),
	}
	if err := s.repo.CreateGrant(ctx, e); err != nil {
		return nil, err
	}

	metrics.CreditGranted.Add(float64(e.Amount))

	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*LedgerEntry, error) {
	return s.repo.ListGrants(ctx, filter)
}
