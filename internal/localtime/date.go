// Package localtime parses and formats the loosely-typed local dates and
// times of day that travellers type into itinerary forms.
//
// Nothing in this package knows about time zones. A Date is a calendar date,
// and a time of day is a float number of hours since local midnight. The
// timeline package is responsible for placing both in a zone.
package localtime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time zone attached.
//
// It is stored as 12:00:00 UTC on that date. Anchoring at noon means that
// reformatting the value in any zone within ±12h of UTC still lands on the
// same calendar day. Zone-aware code should go through In, which builds noon
// in the target zone directly and so holds for every zone.
type Date struct {
	t time.Time
}

// NewDate returns the Date for year, month, day. Out-of-range values are
// normalized the same way time.Date normalizes them (e.g. April 31 → May 1).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date t falls on in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// IsZero reports whether d is the zero Date (no date set).
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Year() int { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) AddDays(n int) Date { return NewDate(d.Year(), d.Month(), d.Day()+n) }
func (d Date) Time() time.Time { return d.t }

// DaysSince returns the number of calendar days from o to d.
// It is negative when d is before o.
func (d Date) DaysSince(o Date) int {
	return int(math.Round(d.t.Sub(o.t).Hours() / 24))
}

// In returns noon of d as a wall-clock time in loc. It is the instant used
// when a zone offset "on this date" is needed.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
}

// String formats d as yyyy-MM-dd. The zero Date formats as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoLayout)
}

// Label formats d as an uppercase short weekday, month and day, e.g.
// "MON APR 13". It is the label used on timeline gridlines.
func (d Date) Label() string {
	return strings.ToUpper(d.t.Format("Mon Jan 2"))
}

// MarshalText implements encoding.TextMarshaler using the ISO form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts every form ParseDate accepts. Empty input yields the
// zero Date so optional dates survive a JSON round trip.
func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, ok := ParseDate(s, 0)
	if !ok {
		return fmt.Errorf("localtime: unrecognised date %q", s)
	}
	*d = parsed
	return nil
}

// FormatDate is the inverse of ParseDate: ParseDate(FormatDate(d), 0) == d.
func FormatDate(d Date) string {
	return d.String()
}

const isoLayout = "2006-01-02"

var (
	// isoDate also matches the date part of an RFC 3339 timestamp.
	isoDate   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[t ].*)?$`)
	slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	// wordDate matches "wed apr 15", "wed, apr 15", "april 15, 2026", "apr 15th".
	wordDate = regexp.MustCompile(`^(?:([a-z]+)\.?,?\s+)?([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ParseDate parses a local calendar date in one of the accepted forms:
//
//	2026-04-15            (also the date part of 2026-04-15T00:00:00Z)
//	4/15/26, 4/15/2026
//	Wed Apr 15, Apr 15, April 15 2026, Wed, April 15, 2026
//
// When the text carries no year, refYear is used; a refYear of 0 means the
// current year. A leading weekday name is accepted but not cross-checked.
// ok is false when the text matches no form or names an impossible date.
func ParseDate(text string, refYear int) (Date, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return Date{}, false
	}

	if m := isoDate.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := slashDate.FindStringSubmatch(s); m != nil {
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return civil(year, atoi(m[1]), atoi(m[2]))
	}

	if m := wordDate.FindStringSubmatch(s); m != nil {
		if m[1] != "" && !isPrefixOfAny(m[1], weekdayNames) {
			return Date{}, false
		}
		month := monthNumber(m[2])
		if month == 0 {
			return Date{}, false
		}
		year := refYear
		if m[4] != "" {
			year = atoi(m[4])
		}
		if year == 0 {
			year = time.Now().Year()
		}
		return civil(year, month, atoi(m[3]))
	}

	return Date{}, false
}

// civil builds a Date and rejects values time.Date would silently normalize.
func civil(year, month, day int) (Date, bool) {
	if month < 1 || month > 12 || day < 1 {
		return Date{}, false
	}
	d := NewDate(year, time.Month(month), day)
	if d.Month() != time.Month(month) || d.Day() != day {
		return Date{}, false
	}
	return d, true
}

// monthNumber accepts any prefix of a month name of at least three letters.
func monthNumber(word string) int {
	if len(word) < 3 {
		return 0
	}
	for i, name := range monthNames {
		if strings.HasPrefix(name, word) {
			return i + 1
		}
	}
	return 0
}

func isPrefixOfAny(word string, names []string) bool {
	if len(word) < 2 {
		return false
	}
	for _, name := range names {
		if strings.HasPrefix(name, word) {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
