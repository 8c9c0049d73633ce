package timeline

import (
	"cmp"
	"slices"

	"github.com/pkordes/perdiem-planner/backend/internal/domain"
	"github.com/pkordes/perdiem-planner/backend/internal/tz"
)

// MidnightGrid returns the date boundaries of both clocks across the trip,
// sorted by position. Home midnights sit at whole multiples of 24 for day
// indices 0..totalDays. When the destination zone differs, its midnights for
// day indices 0..totalDays+1 are shifted by that day's offset and kept only
// inside [-12, (totalDays+1)*24]. On equal positions the home mark comes
// first.
//
// offsets may be nil. A trip with no days has no grid.
func MidnightGrid(trip domain.Trip, offsets *tz.OffsetCache) []domain.MidnightMark {
	start, ok := trip.Start()
	if !ok {
		return nil
	}
	total := trip.TotalDays()

	marks := make([]domain.MidnightMark, 0, 2*total+3)
	for i := 0; i <= total; i++ {
		d := start.AddDays(i)
		marks = append(marks, domain.MidnightMark{
			Hours: float64(i * 24),
			Zone:  domain.SideHome,
			Label: d.Label(),
			Date:  d,
		})
	}

	if trip.DestTZ != "" && trip.DestTZ != trip.HomeTZ {
		lo, hi := -12.0, float64((total+1)*24)
		for i := 0; i <= total+1; i++ {
			d := start.AddDays(i)
			pos := float64(i*24) - offsets.On(d, trip.DestTZ, trip.HomeTZ)
			if pos < lo || pos > hi {
				continue
			}
			marks = append(marks, domain.MidnightMark{
				Hours: pos,
				Zone:  domain.SideDest,
				Label: d.Label(),
				Date:  d,
			})
		}
	}

	slices.SortStableFunc(marks, func(a, b domain.MidnightMark) int {
		return cmp.Compare(a.Hours, b.Hours)
	})
	return marks
}
