package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "attendance-2024-03-01.csv", Filename(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)))
}

func TestWriteAttendanceCSV(t *testing.T) {
	in := time.Date(2024, 3, 1, 8, 5, 0, 0, time.UTC)
	out := time.Date(2024, 3, 1, 17, 35, 0, 0, time.UTC)
	h := 9.5
	rows := []stats.TeamRow{
		{
			Attendance: attendance.Attendance{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CheckInTime: &in, CheckOutTime: &out, TotalHours: &h, Status: attendance.StatusPresent},
			Profile:    profile.DisplayName{FullName: "Moreno, Alice", EmployeeID: "EMP-001"},
		},
		{
			Attendance: attendance.Attendance{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusAbsent},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAttendanceCSV(&buf, rows, time.UTC))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(rows)+1)
	assert.Equal(t, "Date,Employee,Employee ID,Check In,Check Out,Hours,Status", lines[0])
	assert.Equal(t, `2024-03-01,"Moreno, Alice",EMP-001,08:05,17:35,9.5,present`, lines[1])
	assert.Equal(t, "2024-03-01,,,,,,absent", lines[2])

	parsed, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Moreno, Alice", parsed[1][1])
	for _, rec := range parsed {
		assert.Len(t, rec, len(Header))
	}
}

func TestWriteAttendanceCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAttendanceCSV(&buf, nil, nil))
	assert.Equal(t, "Date,Employee,Employee ID,Check In,Check Out,Hours,Status\n", buf.String())
}

func TestRecord_LocalTime(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	in := time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC)
	row := stats.TeamRow{Attendance: attendance.Attendance{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CheckInTime: &in, Status: attendance.StatusLate}}

	assert.Equal(t, "08:30", Record(row, loc)[3])
}
