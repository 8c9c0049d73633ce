// Package handler: export.go implements GET /trips/{name}/summary.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"mime"
	"net/http"
	"strconv"

	"github.com/pkordes/perdiem-planner/backend/internal/expense"
)

// csvHeaders defines the column names written as the first row of a summary CSV.
var csvHeaders = []string{
	"date", "location", "percent", "foreign",
	"breakfast", "lunch", "dinner", "incidentals", "mie", "lodging",
}

// GetSummary handles GET /trips/{name}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, r, http.StatusUnprocessableEntity, requestBody("format must be json or csv"))
		return
	}

	sum, err := s.export.Summary(r.Context(), nameParam(r))
	if err != nil {
		writeServiceError(w, r, err, tripNotFound)
		return
	}

	if format != "csv" {
		writeJSON(w, http.StatusOK, sum)
		return
	}
	buf := buildSummaryCSV(sum)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": sum.Trip + "-summary.csv",
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// buildSummaryCSV writes one row per day, then one TOTAL row with the trip
// totals. Amounts that are missing are written as empty cells, never 0.
func buildSummaryCSV(sum expense.Summary) *bytes.Buffer {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, d := range sum.Days {
		//nolint:errcheck
		cw.Write(dayToCSVRecord(d))
	}
	//nolint:errcheck
	cw.Write([]string{"TOTAL", sum.Currency, "", "", "", "", "", "", money(sum.MIE), money(sum.Lodging)})
	cw.Flush()
	return &buf
}

func dayToCSVRecord(d expense.DaySummary) []string {
	rec := []string{
		d.Date.String(),
		d.Location,
		strconv.Itoa(d.Percent),
		strconv.FormatBool(d.Foreign),
		"", "", "", "", "", "",
	}
	if d.MIE != nil {
		rec[4] = money(d.MIE.PerMeal.Breakfast)
		rec[5] = money(d.MIE.PerMeal.Lunch)
		rec[6] = money(d.MIE.PerMeal.Dinner)
		rec[7] = money(d.MIE.PerMeal.Incidentals)
		rec[8] = money(d.MIE.Total)
	}
	if d.Lodging != nil {
		rec[9] = money(*d.Lodging)
	}
	return rec
}

// money formats an amount with two decimals for display. The summary itself
// keeps full precision.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
