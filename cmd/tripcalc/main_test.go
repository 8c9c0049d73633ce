package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/perdiem-planner/backend/internal/expense"
	"github.com/pkordes/perdiem-planner/backend/internal/perdiem"
	"github.com/pkordes/perdiem-planner/backend/internal/service"
)

const snapshotJSON = `{
  "version": 1,
  "trip": {
    "name": "tokyo",
    "home_tz": "America/New_York",
    "dest_tz": "Asia/Tokyo",
    "dest_city": "Tokyo",
    "days": [
      {"date": "2026-04-12", "base_mie": 100, "meals": {"breakfast": true, "lunch": true, "dinner": true, "incidentals": true}},
      {"date": "2026-04-13", "base_mie": 100, "meals": {"breakfast": true, "lunch": true, "dinner": true, "incidentals": true}}
    ]
  },
  "flights": [{"outbound": [{"id": "nh9", "dep_port": "JFK", "arr_port": "NRT", "dep_date": "2026-04-12", "dep_time": "10:00a", "arr_date": "2026-04-13", "arr_time": "2:00p"}], "cost": 1500, "currency": "USD"}]
}`

// run executes the root command with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTimeline_JSONFromStdin(t *testing.T) {
	out, err := run(t, snapshotJSON, "timeline", "--format", "json")
	require.NoError(t, err)

	var view service.TimelineView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Events, 1)
	assert.Equal(t, "flight:nh9", view.Events[0].Key)
	// 14:00 in Tokyo on the 13th is 01:00 in New York: a 15 hour flight.
	assert.InDelta(t, 10.0, view.Events[0].Start, 1e-9)
	assert.InDelta(t, 25.0, view.Events[0].End, 1e-9)
}

func TestTimeline_TextFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o600))

	out, err := run(t, "", "timeline", "-f", path)
	require.NoError(t, err)

	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "flight:nh9")
	assert.Contains(t, out, "day 1 10:00a")
	assert.Contains(t, out, "day 2 1:00a")
}

func TestTimeline_BadFormat(t *testing.T) {
	_, err := run(t, snapshotJSON, "timeline", "--format", "yaml")

	assert.ErrorContains(t, err, "--format")
}

func TestTimeline_MissingFile(t *testing.T) {
	_, err := run(t, "", "timeline", "-f", filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	out, err := run(t, snapshotJSON, "summary")
	require.NoError(t, err)

	var sum expense.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "USD", sum.Currency)
	// Two travel days at 75% of 100.
	assert.InDelta(t, 150.0, sum.MIE, 1e-9)
	assert.InDelta(t, 1500.0, sum.Flights, 1e-9)
}

func TestSummary_WithRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base":"USD","rates":{"JPY":150}}`), 0o600))
	snap := strings.Replace(snapshotJSON, `"dest_city": "Tokyo",`, `"dest_city": "Tokyo", "currency": "JPY",`, 1)

	out, err := run(t, snap, "summary", "--rates", path)
	require.NoError(t, err)

	var sum expense.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "JPY", sum.Currency)
	assert.InDelta(t, 225000.0, sum.Flights, 1e-6)
	assert.Empty(t, sum.Unconverted)
}

func TestAccrue_Text(t *testing.T) {
	out, err := run(t, "", "accrue", "--day", "1", "--days", "3", "--mie", "80", "--skip", "B,l")
	require.NoError(t, err)

	assert.Contains(t, out, "day 1 of 3 at 75%")
	assert.Contains(t, out, "breakfast       13.80  (not claimed)")
	assert.Contains(t, out, "total           30.60")
}

func TestAccrue_JSON(t *testing.T) {
	out, err := run(t, "", "accrue", "--day", "2", "--days", "3", "--mie", "80", "--json")
	require.NoError(t, err)

	var a perdiem.Accrual
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, 100, a.Percent)
	assert.InDelta(t, 80.0, a.Total, 1e-9)
}

func TestAccrue_Errors(t *testing.T) {
	tests := map[string][]string{
		"day past end": {"accrue", "--day", "4", "--days", "3", "--mie", "80"},
		"unknown meal": {"accrue", "--mie", "80", "--skip", "brunch"},
		"negative mie": {"accrue", "--mie", "-1"},
		"mie required": {"accrue", "--day", "1"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, "", args...)

			assert.Error(t, err)
		})
	}
}
