package importer

import (
	"io"

	"github.com/bfstore/lojinha/internal/employee"
)

type Format string

const (
	FormatHR Format = "hr"
)

type Importer interface {
	Parse(r io.Reader) ([]employee.OnboardParams, error)
}
