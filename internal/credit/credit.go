package credit

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("grant amount must be positive")

// LedgerEntry is an administrator-issued credit grant. The ledger is
// append-only and records grants only: consumption during a purchase
// mutates the employee balance directly and is never ledgered.
type LedgerEntry struct {
	ID         uuid.UUID
	OwnerID    string
	Amount     int64 // cents, always positive
	Note       string
	OccurredAt time.Time
}
