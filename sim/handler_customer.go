// Handlers for boarding and alighting. Both append a validation record
// to the side audit log; capacity-exceeded boarding is a normal outcome
// communicated through the record's success flag, never an error.

package sim

import "fmt"

// customerEnterHandler attempts to board a customer. A customer bounced
// by a full vehicle stays unboarded and is never retried; that is the
// modeled policy, reproduced as-is.
type customerEnterHandler struct {
	baseHandler
}

func (h *customerEnterHandler) Handle(ev Event) error {
	e, ok := ev.(*CustomerEnterEvent)
	if !ok {
		return h.forward(ev)
	}
	s := h.sim
	if e.Customer == nil || e.Vehicle == nil {
		return fmt.Errorf("customer-enter at t=%.1f: nil entity reference", e.Time())
	}
	s.noteHandled(ev, fmt.Sprintf("[t %09.1f] customer %s boarding vehicle %s", e.Time(), e.Customer.ID, e.Vehicle.ID))

	c, v := e.Customer, e.Vehicle
	trip := v.CurrentTrip()
	success := false
	if !c.IsInVehicle && !c.AlreadyServed {
		success = v.AddCustomer(c)
	}
	if success {
		c.StampPickup(e.Time())
		s.Metrics.BoardedCustomers++
		if trip != nil {
			delete(trip.Expected, c.ID)
			trip.Serviced[c.ID] = c
		}
	} else {
		s.Metrics.BoardingFailures++
	}
	s.appendValidation("enter", c, v, trip, c.Pickup, success, e.Time())
	return nil
}

// customerLeaveHandler alights a customer, stamps the real delivery time
// and, when this empties the vehicle at a finished cursor, completes the
// trip and advances the vehicle's trip iterator.
type customerLeaveHandler struct {
	baseHandler
}

func (h *customerLeaveHandler) Handle(ev Event) error {
	e, ok := ev.(*CustomerLeaveEvent)
	if !ok {
		return h.forward(ev)
	}
	s := h.sim
	if e.Customer == nil || e.Vehicle == nil {
		return fmt.Errorf("customer-leave at t=%.1f: nil entity reference", e.Time())
	}
	s.noteHandled(ev, fmt.Sprintf("[t %09.1f] customer %s leaving vehicle %s", e.Time(), e.Customer.ID, e.Vehicle.ID))

	c, v := e.Customer, e.Vehicle
	// captured before the finish path below advances the trip iterator
	trip := v.CurrentTrip()
	success := v.RemoveCustomer(c)
	if success {
		c.StampDelivery(e.Time())
		c.AlreadyServed = true
		s.Metrics.DeliveredCustomers++
		s.Metrics.RecordDelivery(c)

		if trip != nil && trip.State() != TripFinished && trip.IsDone() && len(v.Onboard) == 0 {
			trip.Finish(e.Time())
			s.Metrics.FinishedTrips++
			v.AdvanceTrip()
			v.IsIdle = true
		}
	}
	s.appendValidation("leave", c, v, trip, c.Delivery, success, e.Time())
	return nil
}
