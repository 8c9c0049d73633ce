package perdiem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkordes/perdiem-planner/backend/internal/localtime"
)

// Rates is the per-diem data for one location and date. When Found is false
// the other fields are meaningless and callers must show "no data", not zero.
type Rates struct {
	Lodging   *float64 `json:"lodging,omitempty"`
	MIE       *float64 `json:"mie,omitempty"`
	IsForeign bool     `json:"is_foreign"`
	Found     bool     `json:"found"`
}

// RateLookup answers per-diem rate questions.
type RateLookup interface {
	RatesFor(location string, date localtime.Date) Rates
}

// NoRates is a RateLookup that knows nothing.
type NoRates struct{}

func (NoRates) RatesFor(string, localtime.Date) Rates { return Rates{} }

// RateRow is one line of a rate table. A zero Start or End leaves that side
// of the season open.
type RateRow struct {
	Location string
	Start    localtime.Date
	End      localtime.Date
	Lodging  *float64
	MIE      *float64
	Foreign  bool
}

func (r RateRow) covers(date localtime.Date) bool {
	if !r.Start.IsZero() && date.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && date.After(r.End) {
		return false
	}
	return true
}

// Table is an in-memory RateLookup. Locations match case-insensitively; the
// first row whose season covers the date wins.
type Table struct {
	rows map[string][]RateRow
}

// NewTable indexes rows by location.
func NewTable(rows []RateRow) *Table {
	t := &Table{rows: make(map[string][]RateRow)}
	for _, r := range rows {
		k := locationKey(r.Location)
		t.rows[k] = append(t.rows[k], r)
	}
	return t
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	n := 0
	for _, rs := range t.rows {
		n += len(rs)
	}
	return n
}

// RatesFor implements RateLookup.
func (t *Table) RatesFor(location string, date localtime.Date) Rates {
	for _, r := range t.rows[locationKey(location)] {
		if r.covers(date) {
			return Rates{Lodging: r.Lodging, MIE: r.MIE, IsForeign: r.Foreign, Found: true}
		}
	}
	return Rates{}
}

func locationKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

var csvHeader = []string{"location", "start", "end", "lodging", "mie", "foreign"}

// ErrBadRateRow is wrapped by ParseCSV errors for a malformed row.
var ErrBadRateRow = errors.New("perdiem: bad rate row")

// ParseCSV reads a rate table with the header
//
//	location,start,end,lodging,mie,foreign
//
// start and end are optional dates, lodging and mie optional amounts, and
// foreign a boolean (blank is false).
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("perdiem.ParseCSV: header: %w", err)
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("perdiem.ParseCSV: column %d is %q, want %q", i+1, header[i], want)
		}
	}

	var rows []RateRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("perdiem.ParseCSV: %w", err)
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("perdiem.ParseCSV: line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return NewTable(rows), nil
}

// LoadCSV reads a rate table from path.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("perdiem.LoadCSV: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

func parseRow(rec []string) (RateRow, error) {
	row := RateRow{Location: strings.TrimSpace(rec[0])}
	if row.Location == "" {
		return row, fmt.Errorf("%w: location is required", ErrBadRateRow)
	}

	var err error
	if row.Start, err = optionalDate("start", rec[1]); err != nil {
		return row, err
	}
	if row.End, err = optionalDate("end", rec[2]); err != nil {
		return row, err
	}
	if row.Lodging, err = optionalAmount("lodging", rec[3]); err != nil {
		return row, err
	}
	if row.MIE, err = optionalAmount("mie", rec[4]); err != nil {
		return row, err
	}
	if s := strings.TrimSpace(rec[5]); s != "" {
		if row.Foreign, err = strconv.ParseBool(s); err != nil {
			return row, fmt.Errorf("%w: foreign %q", ErrBadRateRow, s)
		}
	}
	return row, nil
}

func optionalDate(field, s string) (localtime.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return localtime.Date{}, nil
	}
	d, ok := localtime.ParseDate(s, 0)
	if !ok {
		return localtime.Date{}, fmt.Errorf("%w: %s %q", ErrBadRateRow, field, s)
	}
	return d, nil
}

func optionalAmount(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s %q", ErrBadRateRow, field, s)
	}
	return &v, nil
}
