package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildPeriodsMonthClipsRange(t *testing.T) {
	got := BuildPeriods(GroupByMonth, date("2026-01-15"), date("2026-03-10"))
	require.Len(t, got, 3)
	assert.Equal(t, Period{Label: "Jan 2026", From: date("2026-01-15"), To: date("2026-01-31")}, got[0])
	assert.Equal(t, Period{Label: "Feb 2026", From: date("2026-02-01"), To: date("2026-02-28")}, got[1])
	assert.Equal(t, Period{Label: "Mar 2026", From: date("2026-03-01"), To: date("2026-03-10")}, got[2])
}

func TestBuildPeriodsQuarterAlignsToCalendar(t *testing.T) {
	got := BuildPeriods(GroupByQuarter, date("2026-02-01"), date("2026-07-15"))
	require.Len(t, got, 3)
	assert.Equal(t, "Q1 2026", got[0].Label)
	assert.Equal(t, date("2026-02-01"), got[0].From)
	assert.Equal(t, date("2026-03-31"), got[0].To)
	assert.Equal(t, "Q2 2026", got[1].Label)
	assert.Equal(t, date("2026-06-30"), got[1].To)
	assert.Equal(t, "Q3 2026", got[2].Label)
	assert.Equal(t, date("2026-07-15"), got[2].To)
}

func TestBuildPeriodsYear(t *testing.T) {
	got := BuildPeriods(GroupByYear, date("2025-06-01"), date("2026-03-31"))
	require.Len(t, got, 2)
	assert.Equal(t, Period{Label: "2025", From: date("2025-06-01"), To: date("2025-12-31")}, got[0])
	assert.Equal(t, Period{Label: "2026", From: date("2026-01-01"), To: date("2026-03-31")}, got[1])
}

func TestBuildPeriodsEmptyWhenReversed(t *testing.T) {
	assert.Empty(t, BuildPeriods(GroupByMonth, date("2026-02-01"), date("2026-01-01")))
}

func TestBuildPeriodsSingleDay(t *testing.T) {
	got := BuildPeriods(GroupByMonth, date("2026-05-20"), date("2026-05-20"))
	require.Len(t, got, 1)
	assert.Equal(t, "May 2026", got[0].Label)
	assert.Equal(t, got[0].From, got[0].To)
}
