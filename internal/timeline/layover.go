package timeline

import "github.com/pkordes/perdiem-planner/backend/internal/domain"

// Layover flags a segment that departs before the previous segment of the
// same list arrives. Gap is negative: the overlap in hours.
type Layover struct {
	FlightIndex  int               `json:"flight_index"`
	List         domain.FlightList `json:"list"`
	SegmentIndex int               `json:"segment_index"`
	Gap          float64           `json:"gap_hours"`
}

// Layovers checks connection order within every flight list of snap. The
// order is advisory: the result is for display and nothing rejects it.
// Segments that cannot be parsed break the chain and are not compared.
func Layovers(snap domain.Snapshot, opts Options) []Layover {
	n, ok := NewNormalizer(snap.Trip, opts)
	if !ok {
		return nil
	}
	var out []Layover
	for fi, f := range snap.Flights {
		for _, list := range []domain.FlightList{domain.FlightOutbound, domain.FlightReturn} {
			var prev *domain.TimelineEvent
			for si, seg := range f.Segments(list) {
				ev, err := n.flight(fi, list, si, seg)
				if err != nil {
					prev = nil
					continue
				}
				if prev != nil && ev.Start < prev.End {
					out = append(out, Layover{
						FlightIndex:  fi,
						List:         list,
						SegmentIndex: si,
						Gap:          ev.Start - prev.End,
					})
				}
				prev = &ev
			}
		}
	}
	return out
}
