package reports

import (
	"fmt"
	"strconv"
	"time"
)

// BuildPeriods splits [from, to] into month, quarter or year buckets. Labels
// follow "Jan 2026", "Q1 2026" and "2026"; bucket bounds are clipped to the
// requested range.
func BuildPeriods(groupBy string, from, to time.Time) []Period {
	from, to = day(from), day(to)
	if from.After(to) {
		return nil
	}
	var (
		start  time.Time
		months int
	)
	switch groupBy {
	case GroupByQuarter:
		start = time.Date(from.Year(), from.Month()-(from.Month()-1)%3, 1, 0, 0, 0, 0, time.UTC)
		months = 3
	case GroupByYear:
		start = time.Date(from.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		months = 12
	default:
		start = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
		months = 1
	}

	var out []Period
	for cur := start; !cur.After(to); cur = cur.AddDate(0, months, 0) {
		end := cur.AddDate(0, months, -1)
		p := Period{Label: periodLabel(groupBy, cur), From: cur, To: end}
		if p.From.Before(from) {
			p.From = from
		}
		if p.To.After(to) {
			p.To = to
		}
		out = append(out, p)
	}
	return out
}

func periodLabel(groupBy string, start time.Time) string {
	switch groupBy {
	case GroupByQuarter:
		return fmt.Sprintf("Q%d %d", (int(start.Month())-1)/3+1, start.Year())
	case GroupByYear:
		return strconv.Itoa(start.Year())
	default:
		return start.Format("Jan 2006")
	}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
