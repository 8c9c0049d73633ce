package domain

// PaginationParams carries page/limit values from the HTTP layer to the store.
// Page is 1-indexed. Limit is capped at MaxPageLimit by NewPaginationParams.
type PaginationParams struct {
	Page  int
	Limit int
}

// MaxPageLimit bounds the number of trips one list call returns.
const MaxPageLimit = 100

// NewPaginationParams builds a PaginationParams from optional query values.
// Nil or non-positive values fall back to page=1, limit=20.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a listing plus the total number of items.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// TripSummary is the listing view of a stored trip.
type TripSummary struct {
	Name      string `json:"name"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	HomeTZ    string `json:"home_tz"`
	DestTZ    string `json:"dest_tz"`
	DestCity  string `json:"dest_city,omitempty"`
	TotalDays int    `json:"total_days"`
}

// SummaryOf builds the listing view of a snapshot.
func SummaryOf(s Snapshot) TripSummary {
	out := TripSummary{
		Name:      s.Trip.Name,
		HomeTZ:    s.Trip.HomeTZ,
		DestTZ:    s.Trip.DestTZ,
		DestCity:  s.Trip.DestCity,
		TotalDays: s.Trip.TotalDays(),
	}
	if d, ok := s.Trip.Start(); ok {
		out.Start = d.String()
	}
	if d, ok := s.Trip.End(); ok {
		out.End = d.String()
	}
	return out
}
