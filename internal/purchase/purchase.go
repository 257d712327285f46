package purchase

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bfstore/lojinha/internal/catalog"
)

var (
	ErrNotFound   = errors.New("purchase not found")
	ErrInvalidQty = errors.New("quantity must be at least 1")
)

// Purchase is an immutable record of a store sale. UnitPrice and Total are
// snapshots taken at creation; catalog price changes never touch them.
type Purchase struct {
	ID         uuid.UUID
	OwnerID    string
	Item       catalog.Item
	UnitPrice  int64 // cents
	Qty        int
	Total      int64 // cents, UnitPrice * Qty at creation
	OccurredAt time.Time
}
