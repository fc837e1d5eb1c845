// The handler chain: one handler per event category, linked in a fixed
// order. A handler either fully processes an event whose category it
// owns — logging a trace, marking it handled, mutating entities and
// emitting follow-up events — or forwards it unconditionally to the next
// link. An event reaching the end of the chain unmatched is a logic
// defect and aborts the run.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/drt-sim/drt-sim/sim/audit"
)

// Handler is one link of the event handler chain.
type Handler interface {
	Handle(ev Event) error
}

// baseHandler carries the chain link and simulator reference shared by
// all handlers.
type baseHandler struct {
	sim  *Simulator
	next Handler
}

// forward passes an unmatched event down the chain. Exhausting the chain
// is fatal: every event category must have exactly one owner.
func (h *baseHandler) forward(ev Event) error {
	if h.next == nil {
		return fmt.Errorf("event %s at t=%.1f matched no handler in the chain", ev.Category(), ev.Time())
	}
	return h.next.Handle(ev)
}

// newHandlerChain links the six handlers in dispatch order:
// arrive, depart, enter, leave, request, check.
func newHandlerChain(s *Simulator) Handler {
	check := &dynamicRequestCheckHandler{baseHandler{sim: s}}
	request := &customerRequestHandler{baseHandler{sim: s, next: check}}
	leave := &customerLeaveHandler{baseHandler{sim: s, next: request}}
	enter := &customerEnterHandler{baseHandler{sim: s, next: leave}}
	depart := &vehicleDepartHandler{baseHandler{sim: s, next: enter}}
	return &vehicleArriveHandler{baseHandler{sim: s, next: depart}}
}

// noteHandled performs the bookkeeping every matched handler does first:
// trace logging (skipped when the message is empty), the handled-event
// counter, and the terminal handled flag the termination predicate
// counts.
func (s *Simulator) noteHandled(ev Event, trace string) {
	if trace != "" {
		logrus.Info(trace)
	}
	s.Metrics.HandledEvents++
	ev.MarkHandled()
}

// appendValidation records a boarding/alighting outcome in the side
// audit log. The caller passes the trip and stop captured from the event
// context: the trip cursor may already have advanced past the serviced
// stop by the time an enter/leave event dispatches, so neither field can
// be re-derived from the vehicle here.
func (s *Simulator) appendValidation(category string, c *Customer, v *Vehicle, trip *Trip, stop *Stop, success bool, t float64) {
	rec := audit.Record{
		CustomerID:      c.ID,
		Category:        category,
		CategorySuccess: success,
		VehicleID:       v.ID,
		EventTime:       t,
	}
	if stop != nil {
		rec.StopID = stop.ID
	}
	if trip != nil {
		rec.TripID = trip.ID
		rec.ServiceStartTime = trip.ScheduledStart()
		if trip.Route != nil {
			rec.RouteID = trip.Route.ID
		}
	}
	s.Audit.Append(rec)
}
