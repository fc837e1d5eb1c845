// Defines the Vehicle struct: a capacity-bounded mover executing a queue of
// trips, with an onboard customer roster and a trip iterator.

package sim

import (
	"fmt"
	"sort"
)

// Vehicle executes an ordered list of trips, sorted by scheduled trip
// start time, advancing trip-to-trip through a single iterator.
//
// FlexibleRouting distinguishes on-demand vehicles, whose trip schedule
// may be rewritten at runtime by the dynamic insertion protocol, from
// fixed-route vehicles running conventional trips.
type Vehicle struct {
	ID       string
	Speed    float64 // meters per second
	Capacity int

	Onboard []*Customer
	Trips   []*Trip

	// tripIdx is the trip iterator position; -1 before the first trip is
	// taken up.
	tripIdx int

	FlexibleRouting bool
	IsIdle          bool
}

// NewVehicle constructs an idle vehicle with no trips assigned.
func NewVehicle(id string, speed float64, capacity int, flexible bool) *Vehicle {
	return &Vehicle{
		ID:              id,
		Speed:           speed,
		Capacity:        capacity,
		tripIdx:         -1,
		FlexibleRouting: flexible,
		IsIdle:          true,
	}
}

// AssignTrips sets the vehicle's trip list, sorted by scheduled start
// time, and points the iterator at the first trip.
func (v *Vehicle) AssignTrips(trips []*Trip) {
	v.Trips = make([]*Trip, len(trips))
	copy(v.Trips, trips)
	sort.Slice(v.Trips, func(i, j int) bool {
		return v.Trips[i].ScheduledStart() < v.Trips[j].ScheduledStart()
	})
	if len(v.Trips) > 0 {
		v.tripIdx = 0
	}
}

// CurrentTrip returns the trip the iterator addresses, or nil before the
// first trip is assigned or when the list is empty.
func (v *Vehicle) CurrentTrip() *Trip {
	if v.tripIdx < 0 || v.tripIdx >= len(v.Trips) {
		return nil
	}
	return v.Trips[v.tripIdx]
}

// ActiveTrip returns the current trip when it is not yet finished, nil
// otherwise.
func (v *Vehicle) ActiveTrip() *Trip {
	t := v.CurrentTrip()
	if t == nil || t.State() == TripFinished {
		return nil
	}
	return t
}

// AdvanceTrip moves the iterator to the next trip. When the list is
// exhausted the iterator resets and wraps to the first trip again.
// Fixed-route vehicles are single-use so the wrap-around is never
// exercised in practice, but it is the modeled behavior.
func (v *Vehicle) AdvanceTrip() *Trip {
	if len(v.Trips) == 0 {
		return nil
	}
	v.tripIdx++
	if v.tripIdx >= len(v.Trips) {
		v.tripIdx = 0
	}
	return v.Trips[v.tripIdx]
}

// AddCustomer boards a customer. Returns false, without mutating anything,
// when the vehicle is at capacity or the customer is already onboard.
// A full vehicle is a normal outcome, not an error.
func (v *Vehicle) AddCustomer(c *Customer) bool {
	if c.IsInVehicle {
		return false
	}
	if len(v.Onboard) >= v.Capacity {
		return false
	}
	v.Onboard = append(v.Onboard, c)
	c.IsInVehicle = true
	return true
}

// RemoveCustomer alights a customer. Returns false when the customer is
// not onboard.
func (v *Vehicle) RemoveCustomer(c *Customer) bool {
	for i, onboard := range v.Onboard {
		if onboard == c {
			v.Onboard = append(v.Onboard[:i], v.Onboard[i+1:]...)
			c.IsInVehicle = false
			return true
		}
	}
	return false
}

// OnboardFor returns the onboard customers whose delivery is the given
// stop, sorted by id so downstream event generation is deterministic.
func (v *Vehicle) OnboardFor(stop *Stop) []*Customer {
	var out []*Customer
	for _, c := range v.Onboard {
		if c.Delivery.SameLocation(stop) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle(%s, onboard=%d/%d, flexible=%v, idle=%v)",
		v.ID, len(v.Onboard), v.Capacity, v.FlexibleRouting, v.IsIdle)
}
