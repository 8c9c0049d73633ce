package localtime

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var timeOfDay = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*([a-z.]*)$`)

// ParseTimeOfDay parses a local time of day into hours since midnight.
//
// Accepted forms include "9a", "9:30a", "9:30 PM", "9 a.m." and "14:05".
// An input is read as 24-hour time when it is written HH:MM with a two-digit
// hour, or when its hour is 0 or 13-23. Any other input is 12-hour style, and
// a missing or unrecognised meridiem on it means PM ("9:30" is 21.5).
//
// ok is false for anything unparseable. Callers must treat that as "unknown"
// and leave the value out of calculations; it is never zero.
func ParseTimeOfDay(text string) (hours float64, ok bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	m := timeOfDay.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour := atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute = atoi(m[2])
	}
	if minute > 59 {
		return 0, false
	}
	marker := strings.ReplaceAll(m[3], ".", "")
	twentyFour := hour == 0 || hour >= 13 || (m[2] != "" && len(m[1]) == 2)

	switch {
	case marker == "" && twentyFour:
		if hour > 23 {
			return 0, false
		}
	case strings.HasPrefix(marker, "a"):
		if hour < 1 || hour > 12 {
			return 0, false
		}
		hour %= 12
	default:
		if hour < 1 || hour > 12 {
			return 0, false
		}
		hour = hour%12 + 12
	}
	return float64(hour) + float64(minute)/60, true
}

// SplitHours normalizes an hour coordinate into a whole-day carry and an
// hour of day in [0, 24). It is the one place the wraparound rule lives:
// -1 is (-1, 23), 25.5 is (1, 1.5).
func SplitHours(h float64) (dayCarry int, hourOfDay float64) {
	day := math.Floor(h / 24)
	return int(day), h - day*24
}

// FormatHoursOfDay formats an hour value as a 12-hour clock string such as
// "9:20a" or "11:00p". Values outside [0, 24) are wrapped with SplitHours;
// the dropped day carry is the caller's bookkeeping.
func FormatHoursOfDay(h float64) string {
	_, hod := SplitHours(h)
	total := int(math.Round(hod * 60))
	if total >= 24*60 {
		total -= 24 * 60
	}
	hour, minute := total/60, total%60

	suffix := "a"
	if hour >= 12 {
		suffix = "p"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour12, minute, suffix)
}
