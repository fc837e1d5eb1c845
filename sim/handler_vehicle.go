// Handlers for the vehicle-bound event categories: arrivals and
// departures drive the trip progression state machine.

package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// vehicleArriveHandler confirms the trip cursor at the target stop,
// starts the trip on the first arrival, and schedules the stop's
// alighting, boarding and departure cascade.
type vehicleArriveHandler struct {
	baseHandler
}

func (h *vehicleArriveHandler) Handle(ev Event) error {
	e, ok := ev.(*VehicleArriveEvent)
	if !ok {
		return h.forward(ev)
	}
	s := h.sim
	if e.Vehicle == nil || e.Stop == nil {
		return fmt.Errorf("vehicle-arrive at t=%.1f: nil entity reference", e.Time())
	}
	s.noteHandled(ev, fmt.Sprintf("[t %09.1f] vehicle %s arrives at %s", e.Time(), e.Vehicle.ID, e.Stop.ID))

	v := e.Vehicle
	trip := v.ActiveTrip()
	if trip == nil {
		return nil
	}
	if !trip.CurrentStop().SameLocation(e.Stop) {
		// made stale by a schedule rewrite; absorbed silently
		logrus.Debugf("vehicle %s: stale arrival at %s, cursor at %s", v.ID, e.Stop.ID, trip.CurrentStop().ID)
		return nil
	}
	if trip.Cursor() == 0 {
		trip.Start(e.Time())
	}

	leaves := s.Generator.CustomerLeaveEvents(v, e.Stop, e.Time())
	demand := 0
	if !v.FlexibleRouting {
		demand = s.Config.ExpectedDemandPerStop
	}
	enters := s.Generator.CustomerEnterEvents(v, e.Stop, e.Time(), demand)
	s.Events.InsertAll(leaves)
	s.Events.InsertAll(enters)

	// The departure precedence rule: a vehicle may not depart before
	// every customer due to board or alight here has had its event
	// scheduled, nor before the stop's scheduled departure bound.
	departAt := e.Time()
	for _, g := range leaves {
		departAt = math.Max(departAt, g.Time())
	}
	for _, g := range enters {
		departAt = math.Max(departAt, g.Time())
	}
	departAt = math.Max(departAt, trip.DepartureBound(trip.Cursor()))

	if dep := s.Generator.Depart(v, departAt); dep != nil {
		s.Events.Insert(dep)
	} else if trip.IsDone() && len(leaves) == 0 && len(v.Onboard) == 0 {
		// last stop, nothing to board or alight: the trip completes here
		trip.Finish(e.Time())
		s.Metrics.FinishedTrips++
		v.AdvanceTrip()
		v.IsIdle = true
	}
	return nil
}

// vehicleDepartHandler advances the trip cursor and schedules the next
// arrival from precomputed (or great-circle fallback) travel distance
// and vehicle speed.
type vehicleDepartHandler struct {
	baseHandler
}

func (h *vehicleDepartHandler) Handle(ev Event) error {
	e, ok := ev.(*VehicleDepartEvent)
	if !ok {
		return h.forward(ev)
	}
	s := h.sim
	if e.Vehicle == nil || e.Stop == nil {
		return fmt.Errorf("vehicle-depart at t=%.1f: nil entity reference", e.Time())
	}
	s.noteHandled(ev, fmt.Sprintf("[t %09.1f] vehicle %s departs %s", e.Time(), e.Vehicle.ID, e.Stop.ID))

	v := e.Vehicle
	trip := v.ActiveTrip()
	// A depart whose stop no longer matches the cursor was made stale by
	// reconciliation. It is ignored, not erased: idempotent by
	// construction.
	if trip == nil || trip.IsDone() || !trip.CurrentStop().SameLocation(e.Stop) {
		logrus.Debugf("vehicle %s: stale departure at %s", v.ID, e.Stop.ID)
		return nil
	}

	prev := trip.CurrentStop()
	if err := trip.Advance(); err != nil {
		return err
	}
	v.IsIdle = false

	dist := s.Network.Distance(prev, trip.CurrentStop())
	trip.DistanceTraveled += dist
	travel := s.Network.TravelTime(dist, v.Speed)
	s.Events.Insert(s.Generator.Arrive(v, e.Time()+travel))
	return nil
}
