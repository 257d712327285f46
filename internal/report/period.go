package report

import "time"

// Period is a half-open interval [Start, End). A record exactly at End
// belongs to the next period.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthOf returns the calendar month containing ref, in ref's location.
func MonthOf(ref time.Time) Period {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Label is the YYYY-MM tag used in export file names.
func (p Period) Label() string {
	return p.Start.Format("2006-01")
}
