// Defines the Customer struct that models an individual service request in
// the simulation. Tracks the desired and real pickup/delivery time windows
// and the derived wait, delay and ride metrics.

package sim

import "fmt"

// timeUnset marks a real time-window bound that has not been stamped yet.
const timeUnset = -1

// Customer models a single rider's lifecycle in the simulation.
// A customer is created on request (pre-loaded at simulation start or
// synthesized mid-run by a dynamic request check), boards and alights
// through enter/leave events, and is terminal once delivered.
type Customer struct {
	ID       string
	Pickup   *Stop
	Delivery *Stop

	// DesiredTimeWindow is [earliest pickup, latest delivery] in seconds
	// since the simulation epoch.
	DesiredTimeWindow [2]float64

	// RealTimeWindow is filled in as pickup and dropoff actually occur.
	// Bounds are timeUnset until stamped.
	RealTimeWindow [2]float64

	IsInVehicle   bool
	AlreadyServed bool

	// Dynamic is true for customers created mid-run by a dynamic request,
	// false for customers pre-loaded with the scenario.
	Dynamic bool
}

// NewCustomer constructs a customer with an unset real time window.
func NewCustomer(id string, pickup, delivery *Stop, earliestPickup, latestDelivery float64) *Customer {
	return &Customer{
		ID:                id,
		Pickup:            pickup,
		Delivery:          delivery,
		DesiredTimeWindow: [2]float64{earliestPickup, latestDelivery},
		RealTimeWindow:    [2]float64{timeUnset, timeUnset},
	}
}

// StampPickup records the actual boarding time.
func (c *Customer) StampPickup(t float64) {
	c.RealTimeWindow[0] = t
}

// StampDelivery records the actual alighting time.
func (c *Customer) StampDelivery(t float64) {
	c.RealTimeWindow[1] = t
}

// WaitTime returns real pickup minus the desired earliest pickup bound.
// The second return value is false until the customer has boarded.
func (c *Customer) WaitTime() (float64, bool) {
	if c.RealTimeWindow[0] == timeUnset {
		return 0, false
	}
	return c.RealTimeWindow[0] - c.DesiredTimeWindow[0], true
}

// DelayTime returns max(0, real delivery - desired latest delivery bound).
// The second return value is false until the customer has alighted.
func (c *Customer) DelayTime() (float64, bool) {
	if c.RealTimeWindow[1] == timeUnset {
		return 0, false
	}
	delay := c.RealTimeWindow[1] - c.DesiredTimeWindow[1]
	if delay < 0 {
		delay = 0
	}
	return delay, true
}

// RideTime returns real delivery minus real pickup.
// The second return value is false until both stamps exist.
func (c *Customer) RideTime() (float64, bool) {
	if c.RealTimeWindow[0] == timeUnset || c.RealTimeWindow[1] == timeUnset {
		return 0, false
	}
	return c.RealTimeWindow[1] - c.RealTimeWindow[0], true
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer(%s, %s->%s, onboard=%v, served=%v)",
		c.ID, c.Pickup.ID, c.Delivery.ID, c.IsInVehicle, c.AlreadyServed)
}
