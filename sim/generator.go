// The event generator: a factory producing new events from current entity
// state. Generators never mutate entities and never touch the event list;
// callers are responsible for insertion. The generator is an explicit,
// constructed service value passed into the simulator, not a singleton.

package sim

import (
	"fmt"
	"math/rand"
)

// Offsets applied when serializing same-stop events: successive leave
// events are spaced 1 unit apart, successive enter events 2 units apart,
// so all alighting at a stop orders before boarding starts there.
const (
	leaveEventSpacing = 1.0
	enterEventSpacing = 2.0
)

// EventGenerator builds events from entity state. It owns the ad-hoc
// rider id sequence and draws all randomness from the single seeded
// generator shared by the whole simulation.
type EventGenerator struct {
	network    *Network
	rng        *rand.Rand
	timeWindow float64 // desired time-window span for synthesized customers

	adhocSeq   int
	dynamicSeq int
}

// NewEventGenerator constructs a generator drawing randomness from rng.
func NewEventGenerator(network *Network, rng *rand.Rand, timeWindow float64) *EventGenerator {
	return &EventGenerator{network: network, rng: rng, timeWindow: timeWindow}
}

// Arrive returns an arrival event for the vehicle's current trip stop at
// time t, or nil when the vehicle has no active trip.
func (g *EventGenerator) Arrive(v *Vehicle, t float64) Event {
	trip := v.ActiveTrip()
	if trip == nil {
		return nil
	}
	return &VehicleArriveEvent{
		baseEvent: baseEvent{time: t},
		Vehicle:   v,
		Stop:      trip.CurrentStop(),
	}
}

// Depart returns a departure event for the vehicle's current trip stop at
// time t. Suppressed (nil) when the trip cursor already addresses the
// last stop.
func (g *EventGenerator) Depart(v *Vehicle, t float64) Event {
	trip := v.ActiveTrip()
	if trip == nil || trip.IsDone() {
		return nil
	}
	return &VehicleDepartEvent{
		baseEvent: baseEvent{time: t},
		Vehicle:   v,
		Stop:      trip.CurrentStop(),
	}
}

// CustomerLeaveEvents returns one leave event per onboard customer whose
// delivery stop is the given stop, offset by a strictly increasing delay
// (1 unit apart) to give leave events a deterministic relative order
// before any subsequent boarding.
func (g *EventGenerator) CustomerLeaveEvents(v *Vehicle, stop *Stop, t float64) []Event {
	var out []Event
	offset := 0.0
	for _, c := range v.OnboardFor(stop) {
		offset += leaveEventSpacing
		out = append(out, &CustomerLeaveEvent{
			baseEvent: baseEvent{time: t + offset},
			Customer:  c,
			Vehicle:   v,
		})
	}
	return out
}

// CustomerEnterEvents returns the boarding events for the vehicle at the
// given stop.
//
// Flexible vehicles board the trip's expected customers whose pickup is
// this stop. Fixed-route vehicles synthesize up to expectedDemand ad-hoc
// riders with destinations sampled among the remaining stops of the trip,
// excluding the terminal stop.
//
// Each successive boarding is delayed 2 units when the vehicle is not
// full at generation time, serializing boarding after alighting.
func (g *EventGenerator) CustomerEnterEvents(v *Vehicle, stop *Stop, t float64, expectedDemand int) []Event {
	trip := v.ActiveTrip()
	if trip == nil {
		return nil
	}

	var riders []*Customer
	if v.FlexibleRouting {
		riders = trip.ExpectedAt(stop)
	} else {
		riders = g.synthesizeRiders(trip, stop, expectedDemand)
	}

	var out []Event
	offset := 0.0
	for _, c := range riders {
		if len(v.Onboard) < v.Capacity {
			offset += enterEventSpacing
		}
		out = append(out, &CustomerEnterEvent{
			baseEvent: baseEvent{time: t + offset},
			Customer:  c,
			Vehicle:   v,
		})
	}
	return out
}

// synthesizeRiders creates ad-hoc customers boarding a fixed-route trip
// at the given stop. Destinations are drawn among the stops after the
// cursor, excluding the trip's terminal stop; when no such stop exists no
// riders are generated.
func (g *EventGenerator) synthesizeRiders(trip *Trip, stop *Stop, count int) []*Customer {
	stops := trip.Stops()
	lo, hi := trip.Cursor()+1, len(stops)-1
	if lo >= hi {
		return nil
	}
	var out []*Customer
	for i := 0; i < count; i++ {
		dest := stops[lo+g.rng.Intn(hi-lo)]
		g.adhocSeq++
		c := NewCustomer(
			fmt.Sprintf("adhoc_%d", g.adhocSeq),
			stop, dest,
			0, g.timeWindow,
		)
		out = append(out, c)
	}
	return out
}

// CustomerRequest returns a request event for the given customer.
func (g *EventGenerator) CustomerRequest(c *Customer, t float64) Event {
	return &CustomerRequestEvent{
		baseEvent: baseEvent{time: t},
		Customer:  c,
	}
}

// DynamicRequestCheck returns a check event whose probability draw is
// evaluated now, at construction: the event will generate a new dynamic
// request iff the draw is at or below threshold.
func (g *EventGenerator) DynamicRequestCheck(t, threshold float64) *DynamicRequestCheckEvent {
	return &DynamicRequestCheckEvent{
		baseEvent: baseEvent{time: t},
		generate:  g.rng.Float64() <= threshold,
	}
}

// NewDynamicCustomer synthesizes a customer with a random pickup/delivery
// stop pair and a desired window of [t, t+timeWindow].
func (g *EventGenerator) NewDynamicCustomer(t float64) *Customer {
	stops := g.network.Stops()
	if len(stops) < 2 {
		return nil
	}
	pi := g.rng.Intn(len(stops))
	di := g.rng.Intn(len(stops) - 1)
	if di >= pi {
		di++
	}
	g.dynamicSeq++
	c := NewCustomer(
		fmt.Sprintf("dyn_%d", g.dynamicSeq),
		stops[pi], stops[di],
		t, t+g.timeWindow,
	)
	c.Dynamic = true
	return c
}
