// Defines the Trip struct: one scheduled traversal of an ordered stop
// sequence by a vehicle, with a parallel time-window sequence and a
// monotonic stop cursor.

package sim

import (
	"fmt"
	"sort"
)

// TripState represents the lifecycle state of a trip.
type TripState string

const (
	TripNotStarted TripState = "not-started"
	TripStarted    TripState = "started"
	TripFinished   TripState = "finished"
)

// Trip is one scheduled traversal of an ordered stop sequence.
//
// The stop sequence and the time-window sequence are always equal length;
// the stop cursor is a monotonic index into the sequence and never exceeds
// its length. The visited prefix (indices strictly below the cursor) is
// history and must never change: AssignStops only replaces the future
// suffix.
type Trip struct {
	ID       string
	Headsign string
	Route    *Route

	stops   []*Stop
	windows [][2]float64
	cursor  int

	state     TripState
	StartTime float64
	EndTime   float64

	// DistanceTraveled accumulates meters covered on departures.
	DistanceTraveled float64

	// Expected holds customers due to board in the remaining stops.
	Expected map[string]*Customer
	// Serviced holds customers already picked up on this trip.
	Serviced map[string]*Customer
}

// NewTrip constructs a trip over the given stop and window sequences.
// Returns an error when the two sequences differ in length.
func NewTrip(id, headsign string, stops []*Stop, windows [][2]float64) (*Trip, error) {
	if len(stops) != len(windows) {
		return nil, fmt.Errorf("trip %s: %d stops but %d time windows", id, len(stops), len(windows))
	}
	if len(stops) == 0 {
		return nil, fmt.Errorf("trip %s: empty stop sequence", id)
	}
	return &Trip{
		ID:        id,
		Headsign:  headsign,
		stops:     stops,
		windows:   windows,
		state:     TripNotStarted,
		StartTime: timeUnset,
		EndTime:   timeUnset,
		Expected:  make(map[string]*Customer),
		Serviced:  make(map[string]*Customer),
	}, nil
}

// State returns the trip's lifecycle state.
func (t *Trip) State() TripState { return t.state }

// Cursor returns the current stop index.
func (t *Trip) Cursor() int { return t.cursor }

// Stops returns the stop sequence. Callers must not mutate it.
func (t *Trip) Stops() []*Stop { return t.stops }

// Windows returns the scheduled time-window sequence, parallel to Stops.
func (t *Trip) Windows() [][2]float64 { return t.windows }

// CurrentStop returns the stop addressed by the cursor.
func (t *Trip) CurrentStop() *Stop { return t.stops[t.cursor] }

// IsDone reports whether the cursor addresses the last stop.
func (t *Trip) IsDone() bool { return t.cursor == len(t.stops)-1 }

// DepartureBound returns the scheduled latest-departure bound for stop i.
func (t *Trip) DepartureBound(i int) float64 { return t.windows[i][1] }

// ScheduledStart returns the scheduled service start time of the trip:
// the earliest bound of its first stop's window.
func (t *Trip) ScheduledStart() float64 { return t.windows[0][0] }

// Advance moves the cursor to the next stop. The cursor is monotonic and
// never moves past the last stop.
func (t *Trip) Advance() error {
	if t.IsDone() {
		return fmt.Errorf("trip %s: cursor already at last stop", t.ID)
	}
	t.cursor++
	return nil
}

// Start transitions the trip to Started and stamps the start time.
func (t *Trip) Start(at float64) {
	if t.state != TripNotStarted {
		return
	}
	t.state = TripStarted
	t.StartTime = at
}

// Finish transitions the trip to Finished and stamps the end time.
func (t *Trip) Finish(at float64) {
	t.state = TripFinished
	t.EndTime = at
}

// AssignStops replaces the trip's stop and window sequences with the given
// full sequences. Only indices at or beyond the current cursor may differ:
// the caller passes the complete sequence with the visited prefix already
// prepended, unmodified, and AssignStops verifies that the prefix is intact
// before committing. The cursor itself is not moved.
func (t *Trip) AssignStops(stops []*Stop, windows [][2]float64) error {
	if len(stops) != len(windows) {
		return fmt.Errorf("trip %s: %d stops but %d time windows", t.ID, len(stops), len(windows))
	}
	if len(stops) <= t.cursor {
		return fmt.Errorf("trip %s: new sequence of length %d does not cover cursor %d", t.ID, len(stops), t.cursor)
	}
	for i := 0; i < t.cursor; i++ {
		if stops[i] != t.stops[i] {
			return fmt.Errorf("trip %s: visited prefix altered at index %d", t.ID, i)
		}
		if windows[i] != t.windows[i] {
			return fmt.Errorf("trip %s: visited prefix window altered at index %d", t.ID, i)
		}
	}
	t.stops = stops
	t.windows = windows
	return nil
}

// SetExpected replaces the expected-customer set.
func (t *Trip) SetExpected(customers []*Customer) {
	t.Expected = make(map[string]*Customer, len(customers))
	for _, c := range customers {
		t.Expected[c.ID] = c
	}
}

// ExpectedAt returns the expected customers whose pickup is the given stop,
// sorted by id so downstream event generation is deterministic.
func (t *Trip) ExpectedAt(stop *Stop) []*Customer {
	var out []*Customer
	for _, c := range t.Expected {
		if c.Pickup.SameLocation(stop) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t *Trip) String() string {
	return fmt.Sprintf("Trip(%s, %s, cursor=%d/%d, state=%s)",
		t.ID, t.Headsign, t.cursor, len(t.stops), t.state)
}
