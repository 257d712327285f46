package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=employee
type Repository interface {
	CreateEmployee(ctx context.Context, e *Employee, pin string) error
	GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error)
	GetByOwner(ctx context.Context, ownerID string) (*Employee, error)
	ListEmployees(ctx context.Context, filter ListFilter) ([]*Employee, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// VerifyPIN compares the candidate against the stored hash. Hashing
	// stays at the database boundary; the application never sees a hash.
	VerifyPIN(ctx context.Context, ownerID, pin string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	ActiveOnly bool
	Company    *Company
}

type OnboardParams struct {
	OwnerID string
	Name    string
	Sector  string
	Company Company
	// PIN is optional; without one the employee cannot use the kiosk.
	PIN string
}

func (p OnboardParams) validate() error {
	if strings.TrimSpace(p.OwnerID) == "" {
		return fmt.Errorf("owner id is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}

	if strings.TrimSpace(p.Sector) == "" {
		return fmt.Errorf("sector is required")
	}

	if !p.Company.Valid() {
		return ErrInvalidCompany
	}

	if p.PIN != "" && (len(p.PIN) < 4 || len(p.PIN) > 6) {
		return fmt.Errorf("pin must be 4 to 6 digits")
	}

	return nil
}

// Onboard registers a new employee with a zero opening balance.
func (s *Service) Onboard(ctx context.Context, params OnboardParams) (*Employee, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	e := &Employee{
		OwnerID: strings.TrimSpace(params.OwnerID),
		Name:    strings.TrimSpace(params.Name),
		Sector:  strings.TrimSpace(params.Sector),
		Company: params.Company,
		Active:  true,
	}
	if err := s.repo.CreateEmployee(ctx, e, params.PIN); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, ownerID string) (*Employee, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Employee, error) {
	return s.repo.ListEmployees(ctx, filter)
}

// SetActive toggles kiosk and report visibility without deleting history.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// VerifyPIN returns ErrBadPIN when the candidate does not match the stored
// hash or the employee has no PIN enrolled.
func (s *Service) VerifyPIN(ctx context.Context, ownerID, pin string) error {
	ok, err := s.repo.VerifyPIN(ctx, ownerID, pin)
	if err != nil {
		return err
	}

	if !ok {
		return ErrBadPIN
	}

	return nil
}
