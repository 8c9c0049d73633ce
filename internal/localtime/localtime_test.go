package localtime_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
)

// ---- ParseTimeOfDay --------------------------------------------------------

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"9a", 9},
		{"9:30a", 9.5},
		{"9:20A", 9 + 20.0/60},
		{"9:30 PM", 21.5},
		{"9 a.m.", 9},
		{"12a", 0},
		{"12:15a", 0.25},
		{"12p", 12},
		{"12:45 pm", 12.75},
		{"14:05", 14 + 5.0/60},
		{"09:30", 9.5},
		{"00:10", 10.0 / 60},
		{"23:59", 23 + 59.0/60},
		// 12-hour style without a meridiem defaults to PM.
		{"9:30", 21.5},
		{"7", 19},
		{"7x", 19},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, ok := localtime.ParseTimeOfDay(c.in)
			require.True(t, ok)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestParseTimeOfDay_Unparseable(t *testing.T) {
	for _, in := range []string{"", "garbage", "25:00", "9:75a", "13p", "0a", "::", "noonish"} {
		t.Run(in, func(t *testing.T) {
			_, ok := localtime.ParseTimeOfDay(in)
			assert.False(t, ok)
		})
	}
}

// ---- SplitHours / FormatHoursOfDay -----------------------------------------

func TestSplitHours(t *testing.T) {
	day, hod := localtime.SplitHours(-1)
	assert.Equal(t, -1, day)
	assert.InDelta(t, 23, hod, 1e-9)

	day, hod = localtime.SplitHours(25.5)
	assert.Equal(t, 1, day)
	assert.InDelta(t, 1.5, hod, 1e-9)

	day, hod = localtime.SplitHours(0)
	assert.Equal(t, 0, day)
	assert.InDelta(t, 0, hod, 1e-9)
}

func TestFormatHoursOfDay(t *testing.T) {
	cases := map[float64]string{
		0:                "12:00a",
		9 + 20.0/60:      "9:20a",
		12:               "12:00p",
		13.5:             "1:30p",
		23:               "11:00p",
		-1:               "11:00p",
		24:               "12:00a",
		26.25:            "2:15a",
		23.9999999:       "12:00a",
		14 + 5.0/60 - 48: "2:05p",
	}
	for in, want := range cases {
		assert.Equal(t, want, localtime.FormatHoursOfDay(in), "FormatHoursOfDay(%v)", in)
	}
}

func TestFormatHoursOfDay_RoundTrip(t *testing.T) {
	for _, in := range []string{"9:20a", "12:00a", "11:59p", "6:05p"} {
		h, ok := localtime.ParseTimeOfDay(in)
		require.True(t, ok)
		assert.Equal(t, in, localtime.FormatHoursOfDay(h))
	}
}

// ---- ParseDate -------------------------------------------------------------

func TestParseDate(t *testing.T) {
	want := localtime.NewDate(2026, time.April, 15)
	for _, in := range []string{
		"2026-04-15",
		"2026-4-15",
		"2026-04-15T00:00:00Z",
		"2026-04-15T23:30:00-07:00",
		"4/15/26",
		"04/15/2026",
		"Wed Apr 15",
		"wed, apr 15",
		"Apr 15",
		"April 15, 2026",
		"Wednesday April 15th 2026",
	} {
		t.Run(in, func(t *testing.T) {
			got, ok := localtime.ParseDate(in, 2026)
			require.True(t, ok)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_MissingYearUsesReference(t *testing.T) {
	got, ok := localtime.ParseDate("Dec 31", 2019)
	require.True(t, ok)
	assert.Equal(t, "2019-12-31", got.String())

	got, ok = localtime.ParseDate("Dec 31", 0)
	require.True(t, ok)
	assert.Equal(t, time.Now().Year(), got.Year())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "garbage", "2026-02-30", "13/01/2026", "Foo Apr 15", "Ap 15", "2026-13-01"} {
		t.Run(in, func(t *testing.T) {
			_, ok := localtime.ParseDate(in, 2026)
			assert.False(t, ok)
		})
	}
}

// TestParseDate_RoundTrip checks that canonicalization is idempotent: once a
// string has been parsed and formatted, further round trips are stable.
func TestParseDate_RoundTrip(t *testing.T) {
	for _, in := range []string{"2024-02-29", "1/1/27", "Sun Nov 1", "December 31, 2030"} {
		first, ok := localtime.ParseDate(in, 2026)
		require.True(t, ok, in)

		formatted := localtime.FormatDate(first)
		second, ok := localtime.ParseDate(formatted, 1999)
		require.True(t, ok, formatted)

		assert.True(t, first.Equal(second), "%s: %s != %s", in, first, second)
		assert.Equal(t, formatted, localtime.FormatDate(second))
	}
}

// ---- Date ------------------------------------------------------------------

// TestDate_NoonAnchorSurvivesZones verifies that rendering a Date in zones on
// both sides of UTC still yields the same calendar day.
func TestDate_NoonAnchorSurvivesZones(t *testing.T) {
	d := localtime.NewDate(2026, time.March, 8)
	for _, name := range []string{"Pacific/Pago_Pago", "America/New_York", "Asia/Kolkata", "Asia/Tokyo"} {
		loc, err := time.LoadLocation(name)
		require.NoError(t, err)
		assert.Equal(t, 8, d.Time().In(loc).Day(), name)
	}

	// UTC+14 is past the reach of the UTC anchor; In builds noon locally.
	kiritimati, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)
	assert.Equal(t, 8, d.In(kiritimati).Day())
	assert.True(t, d.Equal(localtime.DateOf(d.In(kiritimati))))
}

func TestDate_Arithmetic(t *testing.T) {
	start := localtime.NewDate(2026, time.February, 27)
	end := start.AddDays(3)

	assert.Equal(t, "2026-03-02", end.String())
	assert.Equal(t, 3, end.DaysSince(start))
	assert.Equal(t, -3, start.DaysSince(end))
	assert.True(t, start.Before(end))
	assert.Equal(t, "MON MAR 2", end.Label())
}

func TestDate_TextMarshalling(t *testing.T) {
	var d localtime.Date
	require.NoError(t, d.UnmarshalText([]byte("4/15/2026")))
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-04-15", string(b))

	require.NoError(t, d.UnmarshalText([]byte("")))
	assert.True(t, d.IsZero())

	assert.Error(t, d.UnmarshalText([]byte("not a date")))
}
