package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/bfstore/lojinha/internal/employee"
	"github.com/bfstore/lojinha/internal/importer/hr"
)

// Onboarder registers one parsed employee. Satisfied by employee.Service.
type Onboarder interface {
	Onboard(ctx context.Context, params employee.OnboardParams) (*employee.Employee, error)
}

type Service struct {
	hrImporter Importer
}

func NewService() *Service {
	return &Service{
		hrImporter: hr.NewParser(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]employee.OnboardParams, error) {
	var importer Importer

	switch format {
	case FormatHR:
		importer = s.hrImporter
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return importer.Parse(r)
}

// RowError records a row that parsed but could not be onboarded.
type RowError struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Reason  string `json:"reason"`
}

type Result struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors,omitempty"`
}

// Import parses the file and onboards every row. Rows that fail validation
// or collide with existing employees are collected instead of aborting the
// batch; a parse failure still aborts everything.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader, onboarder Onboarder) (*Result, error) {
	rows, err := s.Parse(format, r)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, params := range rows {
		if _, err := onboarder.Onboard(ctx, params); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{
				OwnerID: params.OwnerID,
				Name:    params.Name,
				Reason:  err.Error(),
			})

			continue
		}

		result.Created++
	}

	return result, nil
}
