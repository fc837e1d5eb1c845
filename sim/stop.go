package sim

import "fmt"

// Stop is a fixed geographic location customers board and alight at.
// A Stop is immutable after construction except for the Dummy marker:
// CloneDummy produces a synthetic copy representing a moving vehicle's
// current position during re-optimization. The copy shares the real
// stop's id and coordinates but has a distinct identity, so the solver
// does not conflate the vehicle's start position with that stop's other
// roles as a pickup or delivery location.
type Stop struct {
	ID    string
	Lat   float64
	Lon   float64
	Urban bool
	Dummy bool
}

// NewStop constructs a stop at the given coordinates.
func NewStop(id string, lat, lon float64, urban bool) *Stop {
	return &Stop{ID: id, Lat: lat, Lon: lon, Urban: urban}
}

// CloneDummy returns a dummy copy of s: same id and coordinates,
// distinct identity, Dummy flag set.
func (s *Stop) CloneDummy() *Stop {
	return &Stop{ID: s.ID, Lat: s.Lat, Lon: s.Lon, Urban: s.Urban, Dummy: true}
}

// SameLocation reports whether a and b refer to the same stop id.
// Dummy copies compare equal to their real counterpart.
func (s *Stop) SameLocation(other *Stop) bool {
	if s == nil || other == nil {
		return false
	}
	return s.ID == other.ID
}

func (s *Stop) String() string {
	if s.Dummy {
		return fmt.Sprintf("Stop(%s, dummy)", s.ID)
	}
	return fmt.Sprintf("Stop(%s)", s.ID)
}
