package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bfstore/lojinha/internal/report"
)

func TestMonthOf(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "MidMonth",
			ref:       time.Date(2026, 8, 15, 13, 45, 0, 0, time.UTC),
			wantStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "YearRollover",
			ref:       time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "FebruaryLeap",
			ref:       time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "FebruaryNonLeap",
			ref:       time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := report.MonthOf(tt.ref)

			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
			assert.True(t, p.Contains(tt.ref), "reference must fall inside its own period")
		})
	}
}

func TestMonthOf_ConsecutiveMonthsShareBoundary(t *testing.T) {
	dec := report.MonthOf(time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC))
	jan := report.MonthOf(dec.End)

	assert.Equal(t, dec.End, jan.Start)
}

func TestPeriod_ContainsIsHalfOpen(t *testing.T) {
	p := report.MonthOf(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, p.Contains(p.Start))
	assert.False(t, p.Contains(p.End), "a record exactly at End belongs to the next period")
	assert.False(t, p.Contains(p.Start.Add(-time.Nanosecond)))
	assert.True(t, p.Contains(p.End.Add(-time.Nanosecond)))
}

func TestMonthOf_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	p := report.MonthOf(time.Date(2026, 8, 15, 0, 0, 0, 0, loc))

	assert.Equal(t, loc, p.Start.Location())
	assert.Equal(t, "2026-08", p.Label())
}
