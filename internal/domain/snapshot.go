package domain

// SnapshotVersion is the current version of the Snapshot shape.
const SnapshotVersion = 1

// Snapshot is the plain-data state of one trip: the persistence and
// import/export boundary. It carries raw local values only; anything derived
// from them is recomputed on read.
type Snapshot struct {
	Version   int            `json:"version"`
	Trip      Trip           `json:"trip"`
	Flights   []Flight       `json:"flights,omitempty"`
	Hotels    []Hotel        `json:"hotels,omitempty"`
	Transport []TransportLeg `json:"transport,omitempty"`
}

// Clone returns a deep copy of s, so callers can edit it without touching
// the original.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.Trip = s.Trip.Clone()
	if s.Flights != nil {
		cp.Flights = make([]Flight, len(s.Flights))
		for i, f := range s.Flights {
			cp.Flights[i] = f.Clone()
		}
	}
	if s.Hotels != nil {
		cp.Hotels = make([]Hotel, len(s.Hotels))
		for i, h := range s.Hotels {
			cp.Hotels[i] = h.Clone()
		}
	}
	if s.Transport != nil {
		cp.Transport = make([]TransportLeg, len(s.Transport))
		for i, l := range s.Transport {
			cp.Transport[i] = l.Clone()
		}
	}
	return cp
}
