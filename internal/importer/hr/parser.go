package hr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bfstore/lojinha/internal/employee"
	enc "github.com/bfstore/lojinha/internal/encoding"
)

// Parser reads HR roster exports and produces onboarding params.
// It auto-detects which roster layout is being used by matching column
// headers against known profiles, so preamble rows before the header
// are tolerated.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]employee.OnboardParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching roster layout found: expected columns %v or %v",
			profiles[0].requiredCols(), profiles[1].requiredCols())
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts onboarding params from data rows using the matched
// profile. headerRowNum is the 0-based index of the header in the original
// file (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]employee.OnboardParams, error) {
	ownerIdx := cols[p.OwnerCol]
	nameIdx := cols[p.NameCol]
	sectorIdx := cols[p.SectorCol]
	companyIdx := cols[p.CompanyCol]

	pinIdx := -1
	if p.PINCol != "" {
		if i, ok := cols[p.PINCol]; ok {
			pinIdx = i
		}
	}

	var params []employee.OnboardParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		owner := cellValue(row, ownerIdx)
		if owner == "" {
			// Blank owner marks an empty or footer row.
			continue
		}

		name := cellValue(row, nameIdx)
		if name == "" {
			return nil, fmt.Errorf("row %d: missing name", rowNum)
		}

		sector := cellValue(row, sectorIdx)
		if sector == "" {
			return nil, fmt.Errorf("row %d: missing sector", rowNum)
		}

		company, ok := parseCompany(cellValue(row, companyIdx))
		if !ok {
			return nil, fmt.Errorf("row %d: unknown company %q", rowNum, cellValue(row, companyIdx))
		}

		params = append(params, employee.OnboardParams{
			OwnerID: owner,
			Name:    name,
			Sector:  sector,
			Company: company,
			PIN:     cellValue(row, pinIdx),
		})
	}

	return params, nil
}

// parseCompany normalizes a company cell to a known company code.
func parseCompany(s string) (employee.Company, bool) {
	c := employee.Company(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", false
	}

	return c, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
