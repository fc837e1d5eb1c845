// Defines the event model that drives the simulation: six event
// categories, totally ordered by (time, category), each carrying the
// entities its handler acts upon.

package sim

import "fmt"

// Category tags an event with its kind. Categories double as the
// tie-break key for events scheduled at the same instant: the lower
// category dispatches first, which fixes arrivals before departures
// before boarding at an equal time.
type Category int

const (
	CategoryVehicleArrive Category = iota
	CategoryVehicleDepart
	CategoryCustomerEnter
	CategoryCustomerLeave
	CategoryCustomerRequest
	CategoryDynamicRequestCheck
)

func (c Category) String() string {
	switch c {
	case CategoryVehicleArrive:
		return "vehicle-arrive"
	case CategoryVehicleDepart:
		return "vehicle-depart"
	case CategoryCustomerEnter:
		return "customer-enter"
	case CategoryCustomerLeave:
		return "customer-leave"
	case CategoryCustomerRequest:
		return "customer-request"
	case CategoryDynamicRequestCheck:
		return "dynamic-request-check"
	}
	return fmt.Sprintf("category-%d", int(c))
}

// Event is a scheduled simulation occurrence. Events are comparable
// solely by (Time, Category). An event is dispatched exactly once and
// then frozen; SetTime exists only for the dynamic insertion protocol,
// which is the sole sanctioned mutation of an already-enqueued event.
type Event interface {
	Time() float64
	// SetTime re-times a pending event. Reserved for schedule
	// reconciliation; handlers never call it.
	SetTime(t float64)
	Category() Category
	Handled() bool
	MarkHandled()
}

// baseEvent carries the time and handled flag shared by all events.
type baseEvent struct {
	time    float64
	handled bool
}

func (e *baseEvent) Time() float64     { return e.time }
func (e *baseEvent) SetTime(t float64) { e.time = t }
func (e *baseEvent) Handled() bool     { return e.handled }
func (e *baseEvent) MarkHandled()      { e.handled = true }

// VehicleArriveEvent represents a vehicle reaching a stop.
type VehicleArriveEvent struct {
	baseEvent
	Vehicle *Vehicle
	Stop    *Stop
}

func (e *VehicleArriveEvent) Category() Category { return CategoryVehicleArrive }

// VehicleDepartEvent represents a vehicle leaving a stop. A depart event
// whose stop no longer matches the vehicle's cursor is stale and is
// ignored by its handler.
type VehicleDepartEvent struct {
	baseEvent
	Vehicle *Vehicle
	Stop    *Stop
}

func (e *VehicleDepartEvent) Category() Category { return CategoryVehicleDepart }

// CustomerEnterEvent represents a boarding attempt.
type CustomerEnterEvent struct {
	baseEvent
	Customer *Customer
	Vehicle  *Vehicle
}

func (e *CustomerEnterEvent) Category() Category { return CategoryCustomerEnter }

// CustomerLeaveEvent represents a customer alighting.
type CustomerLeaveEvent struct {
	baseEvent
	Customer *Customer
	Vehicle  *Vehicle
}

func (e *CustomerLeaveEvent) Category() Category { return CategoryCustomerLeave }

// CustomerRequestEvent represents a service request to be inserted into
// the running fleet. On acceptance the handler retains the computed
// solution on the event.
type CustomerRequestEvent struct {
	baseEvent
	Customer *Customer
	Solution *Solution
}

func (e *CustomerRequestEvent) Category() Category { return CategoryCustomerRequest }

// DynamicRequestCheckEvent periodically decides whether to synthesize a
// new dynamic request. The probability draw happens once, at
// construction, not at dispatch time.
type DynamicRequestCheckEvent struct {
	baseEvent
	generate bool
}

func (e *DynamicRequestCheckEvent) Category() Category { return CategoryDynamicRequestCheck }

// GenerateNewDynamicRequest reports the outcome of the construction-time
// probability draw.
func (e *DynamicRequestCheckEvent) GenerateNewDynamicRequest() bool { return e.generate }

// eventVehicle returns the vehicle an event belongs to, or nil for
// events not bound to a vehicle.
func eventVehicle(ev Event) *Vehicle {
	switch e := ev.(type) {
	case *VehicleArriveEvent:
		return e.Vehicle
	case *VehicleDepartEvent:
		return e.Vehicle
	case *CustomerEnterEvent:
		return e.Vehicle
	case *CustomerLeaveEvent:
		return e.Vehicle
	}
	return nil
}
