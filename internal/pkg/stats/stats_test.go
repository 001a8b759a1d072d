package stats

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(attendance.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func hours(v float64) *float64 { return &v }

func rec(day string, status attendance.Status, h *float64) attendance.Attendance {
	return attendance.Attendance{ID: day + string(status), UserID: "u1", Date: date(day), Status: status, TotalHours: h}
}

func TestFilterMonth_InclusiveBounds(t *testing.T) {
	records := []attendance.Attendance{
		rec("2024-02-29", attendance.StatusPresent, nil),
		rec("2024-03-01", attendance.StatusPresent, nil),
		rec("2024-03-15", attendance.StatusLate, nil),
		rec("2024-03-31", attendance.StatusAbsent, nil),
		rec("2024-04-01", attendance.StatusPresent, nil),
	}

	got := FilterMonth(records, date("2024-03-10"))
	require.Len(t, got, 3)
	assert.Equal(t, "2024-03-01", got[0].Date.Format(attendance.DateLayout))
	assert.Equal(t, "2024-03-31", got[2].Date.Format(attendance.DateLayout))
}

func TestFilterMonth_Partition(t *testing.T) {
	var records []attendance.Attendance
	for d := date("2024-01-01"); d.Year() == 2024; d = d.AddDate(0, 0, 3) {
		records = append(records, rec(d.Format(attendance.DateLayout), attendance.StatusPresent, nil))
	}

	total := 0
	for _, m := range RecentMonths(date("2024-12-01"), 12) {
		total += len(FilterMonth(records, m))
	}
	assert.Equal(t, len(records), total)
}

func TestTally(t *testing.T) {
	records := []attendance.Attendance{
		rec("2024-03-01", attendance.StatusPresent, nil),
		rec("2024-03-02", attendance.StatusPresent, nil),
		rec("2024-03-03", attendance.StatusLate, nil),
		rec("2024-03-04", attendance.StatusHalfDay, nil),
		rec("2024-03-05", attendance.StatusAbsent, nil),
		rec("2024-03-06", attendance.Status("remote"), nil),
		rec("2024-03-07", attendance.Status(""), nil),
	}

	c := Tally(records)
	assert.Equal(t, StatusCounts{Present: 2, Absent: 1, Late: 1, HalfDay: 1}, c)
	assert.Equal(t, 5, c.Total())
	assert.LessOrEqual(t, c.Total(), len(records))
	assert.Equal(t, 3, c.PresentLike())
}

func TestTally_TotalEqualsWhenAllKnown(t *testing.T) {
	records := []attendance.Attendance{
		rec("2024-03-01", attendance.StatusPresent, nil),
		rec("2024-03-02", attendance.StatusHalfDay, nil),
	}
	assert.Equal(t, len(records), Tally(records).Total())
}

func TestStatusCounts_SliceSkipsZero(t *testing.T) {
	got := StatusCounts{Present: 3, HalfDay: 1}.Slice()
	assert.Equal(t, []StatusCount{
		{Status: attendance.StatusPresent, Count: 3},
		{Status: attendance.StatusHalfDay, Count: 1},
	}, got)
}

func TestHours(t *testing.T) {
	assert.Equal(t, HoursSummary{}, Hours(nil))

	got := Hours([]attendance.Attendance{
		rec("2024-03-01", attendance.StatusPresent, hours(8)),
		rec("2024-03-02", attendance.StatusLate, nil),
		rec("2024-03-03", attendance.StatusPresent, hours(7)),
	})
	assert.InDelta(t, 15.0, got.Total, 1e-9)
	assert.InDelta(t, 5.0, got.Average, 1e-9)
}

func TestAttendanceRate(t *testing.T) {
	c := StatusCounts{Present: 40, Late: 5}
	assert.Equal(t, 0, AttendanceRate(c, 31, 0))
	assert.Equal(t, 0, AttendanceRate(StatusCounts{}, 0, 3))
	// 45 / (30 × 2) = 75%
	assert.Equal(t, 75, AttendanceRate(c, 30, 2))
	// 2 / 3 rounds to 67
	assert.Equal(t, 67, Percent(2, 3))
}

func TestMonthGrid_SundayPadding(t *testing.T) {
	// March 2024 starts on a Friday.
	grid := MonthGrid(date("2024-03-01"), nil, date("2024-03-10"), time.Sunday)
	assert.Equal(t, 5, PaddingFor(date("2024-03-01"), time.Sunday))
	require.Len(t, grid, 5+31)
	for i := 0; i < 5; i++ {
		assert.True(t, grid[i].IsPadding)
	}
	assert.Equal(t, 1, grid[5].Day)
	assert.Equal(t, "Fri", grid[5].Weekday)
}

func TestMonthGrid_CellCountProperty(t *testing.T) {
	for _, m := range RecentMonths(date("2025-12-01"), 24) {
		for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
			grid := MonthGrid(m, nil, m, ws)
			assert.Len(t, grid, PaddingFor(MonthStart(m), ws)+DaysIn(m))
		}
	}
}

func TestMonthGrid_Flags(t *testing.T) {
	records := []attendance.Attendance{
		rec("2024-03-04", attendance.StatusLate, nil),
		rec("2024-03-04", attendance.StatusPresent, nil),
		rec("2024-03-20", attendance.StatusPresent, nil),
	}
	today := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	grid := MonthGrid(date("2024-03-01"), records, today, time.Sunday)
	byDay := map[int]Cell{}
	for _, c := range grid {
		if !c.IsPadding {
			byDay[c.Day] = c
		}
	}

	// first match wins
	require.NotNil(t, byDay[4].Status)
	assert.Equal(t, "late", *byDay[4].Status)
	assert.False(t, byDay[4].Uncovered)

	assert.True(t, byDay[10].IsToday)
	assert.False(t, byDay[10].IsFuture)
	assert.True(t, byDay[10].Uncovered)

	assert.True(t, byDay[5].Uncovered)
	assert.True(t, byDay[11].IsFuture)
	assert.False(t, byDay[11].Uncovered)
	assert.Nil(t, byDay[11].Status)
	assert.NotNil(t, byDay[20].Status)
}

func TestWeekStrip_MondayStart(t *testing.T) {
	// 2024-03-10 is a Sunday, so the week runs Mon 4th .. Sun 10th.
	strip := WeekStrip(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), []attendance.Attendance{
		rec("2024-03-05", attendance.StatusPresent, nil),
	})
	require.Len(t, strip, 7)
	assert.Equal(t, "2024-03-04", strip[0].Date)
	assert.Equal(t, "Mon", strip[0].Weekday)
	assert.Equal(t, "2024-03-10", strip[6].Date)
	assert.True(t, strip[6].IsToday)
	require.NotNil(t, strip[1].Status)

	strip = WeekStrip(date("2024-03-06"), nil)
	assert.Equal(t, "2024-03-04", strip[0].Date)
	assert.True(t, strip[2].IsToday)
	assert.True(t, strip[3].IsFuture)
	assert.False(t, strip[3].Uncovered)
}

func TestDailySeries(t *testing.T) {
	records := []attendance.Attendance{
		rec("2024-02-01", attendance.StatusPresent, nil),
		rec("2024-02-01", attendance.StatusLate, nil),
		rec("2024-02-01", attendance.StatusAbsent, nil),
		rec("2024-02-29", attendance.StatusHalfDay, nil),
		rec("2024-03-01", attendance.StatusPresent, nil),
	}
	series := DailySeries(date("2024-02-10"), records)
	require.Len(t, series, 29)
	assert.Equal(t, DayPoint{Day: 1, Date: "2024-02-01", Present: 2, Absent: 1}, series[0])
	assert.Equal(t, DayPoint{Day: 29, Date: "2024-02-29"}, series[28])
}

func TestSummarize(t *testing.T) {
	records := []attendance.Attendance{
		rec("2024-03-01", attendance.StatusPresent, hours(8)),
		rec("2024-03-02", attendance.StatusLate, hours(6.5)),
		rec("2024-02-28", attendance.StatusPresent, hours(8)),
	}
	s := Summarize(records, date("2024-03-15"), 1)
	assert.Equal(t, "2024-03", s.Month)
	assert.Equal(t, 2, s.Records)
	assert.Equal(t, 2, s.PresentDays)
	assert.InDelta(t, 14.5, s.TotalHours, 1e-9)
	assert.InDelta(t, 7.3, s.AverageHours, 1e-9)
	assert.Equal(t, Percent(2, 31), s.Rate)

	empty := Summarize(nil, date("2024-03-15"), 0)
	assert.Equal(t, 0.0, empty.AverageHours)
	assert.Equal(t, 0, empty.Rate)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-07", time.Now())
	require.NoError(t, err)
	assert.Equal(t, date("2024-07-01"), m)

	m, err = ParseMonth("", date("2024-09-17"))
	require.NoError(t, err)
	assert.Equal(t, date("2024-09-01"), m)

	for _, bad := range []string{"July", "2024-13", "2024-07-01"} {
		_, err = ParseMonth(bad, time.Now())
		assert.Error(t, err, bad)
	}
}

func TestRecentMonths(t *testing.T) {
	got := RecentMonths(date("2024-01-20"), 3)
	assert.Equal(t, []time.Time{date("2023-11-01"), date("2023-12-01"), date("2024-01-01")}, got)
}
