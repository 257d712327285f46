package employee

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Company is the legal entity an employee belongs to.
type Company string

const (
	CompanyFA Company = "FA"
	CompanyBF Company = "BF"
)

func (c Company) Valid() bool {
	return c == CompanyFA || c == CompanyBF
}

var (
	ErrNotFound       = errors.New("employee not found")
	ErrBadPIN         = errors.New("pin verification failed")
	ErrInvalidCompany = errors.New("invalid company code")
)

// Employee is a store account holder. OwnerID is the stable identity key
// issued by the auth provider and is the join key for purchases and credit
// ledger entries.
type Employee struct {
	ID            uuid.UUID
	OwnerID       string
	Name          string
	Sector        string
	Company       Company
	Active        bool
	CreditBalance int64 // cents
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
