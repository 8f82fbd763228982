package periods

import (
	"fmt"
	"time"
)

// FiscalYear is the accounting year a posting date belongs to.
type FiscalYear struct {
	Name  string    `json:"name"`
	Start time.Time `json:"year_start_date"`
	End   time.Time `json:"year_end_date"`
}

// Contains reports whether date falls within the fiscal year, inclusive.
func (y FiscalYear) Contains(date time.Time) bool {
	d := truncate(date)
	return !d.Before(y.Start) && !d.After(y.End)
}

// YearStart describes the month and day every fiscal year starts on.
type YearStart struct {
	Month time.Month
	Day   int
}

// ParseYearStart parses an "MM-DD" fiscal year start.
func ParseYearStart(value string) (YearStart, error) {
	t, err := time.Parse("01-02", value)
	if err != nil {
		return YearStart{}, fmt.Errorf("periods: parse fiscal year start %q: %w", value, err)
	}
	return YearStart{Month: t.Month(), Day: t.Day()}, nil
}

// Boundary returns the fiscal year containing date for a fixed start.
// Calendar years are named "2026"; split years "2025-2026".
func Boundary(date time.Time, start YearStart) FiscalYear {
	if start.Month == 0 {
		start = YearStart{Month: time.January, Day: 1}
	}
	if start.Day == 0 {
		start.Day = 1
	}
	d := truncate(date)
	begin := time.Date(d.Year(), start.Month, start.Day, 0, 0, 0, 0, time.UTC)
	if d.Before(begin) {
		begin = begin.AddDate(-1, 0, 0)
	}
	end := begin.AddDate(1, 0, -1)
	name := fmt.Sprintf("%d", begin.Year())
	if end.Year() != begin.Year() {
		name = fmt.Sprintf("%d-%d", begin.Year(), end.Year())
	}
	return FiscalYear{Name: name, Start: begin, End: end}
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
