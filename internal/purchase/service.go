package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/metrics"
	"github.com/bfstore/lojinha/internal/notify"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchase
type Repository interface {
	// CreatePurchase inserts the purchase and settles the owner's credit
	// in the same database transaction: the balance is decremented by
	// min(balance, total) in a single conditional update, so it can never
	// go negative and concurrent purchases cannot race a read-then-write.
	CreatePurchase(ctx context.Context, p *Purchase) error

	ListPurchases(ctx context.Context, filter ListFilter) ([]*Purchase, error)
}

type ListFilter struct {
	OwnerID *string
	// Start is inclusive, End exclusive.
	Start *time.Time
	End   *time.Time
}

type CreateParams struct {
	OwnerID string
	Item    catalog.Item
	Qty     int
}

type Service struct {
	repo        Repository
	broadcaster *notify.Broadcaster
}

func NewService(repo Repository, broadcaster *notify.Broadcaster) *Service {
	return &Service{repo: repo, broadcaster: broadcaster}
}

// Create registers a purchase at the current catalog price. Unknown item
// codes are rejected here so reports never need a guess-label for new rows.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Purchase, error) {
	price, err := catalog.Price(params.Item)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", params.Item, err)
	}

	if params.Qty < 1 {
		return nil, ErrInvalidQty
	}

	p := &Purchase{
		OwnerID:   params.OwnerID,
		Item:      params.Item,
		UnitPrice: price,
		Qty:       params.Qty,
		Total:     price * int64(params.Qty),
	}
	if err := s.repo.CreatePurchase(ctx, p); err != nil {
		return nil, err
	}

	metrics.PurchasesRegistered.WithLabelValues(string(p.Item)).Inc()
	metrics.PurchaseVolume.Add(float64(p.Total))

	if s.broadcaster != nil {
		s.broadcaster.Publish(notify.PurchaseEvent{
			OwnerID:    p.OwnerID,
			Item:       catalog.Label(p.Item),
			Qty:        p.Qty,
			Total:      p.Total,
			OccurredAt: p.OccurredAt,
		})
	}

	return p, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Purchase, error) {
	return s.repo.ListPurchases(ctx, filter)
}
