// Handlers for service requests and the self-perpetuating dynamic
// request check.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// customerRequestHandler runs the dynamic insertion protocol against the
// currently flexible, active vehicles. On acceptance the computed
// solution is retained on the event; on optimizer failure nothing is
// mutated and the request is recorded as unserved.
type customerRequestHandler struct {
	baseHandler
}

func (h *customerRequestHandler) Handle(ev Event) error {
	e, ok := ev.(*CustomerRequestEvent)
	if !ok {
		return h.forward(ev)
	}
	s := h.sim
	if e.Customer == nil {
		return fmt.Errorf("customer-request at t=%.1f: nil customer", e.Time())
	}
	c := e.Customer
	s.noteHandled(ev, fmt.Sprintf("[t %09.1f] request %s: %s -> %s", e.Time(), c.ID, c.Pickup.ID, c.Delivery.ID))

	s.Metrics.TotalRequests++
	if c.Dynamic {
		s.Metrics.TotalDynamicRequests++
	}

	sol, served, err := s.InsertRequest(c, e.Time())
	if err != nil {
		return err
	}
	if !served {
		logrus.Infof("request %s goes unserved: no feasible insertion", c.ID)
		return nil
	}
	e.Solution = sol
	if c.Dynamic {
		s.Metrics.TotalServedDynamicRequests++
	}
	return nil
}

// dynamicRequestCheckHandler synthesizes a new customer when its
// construction-time draw passed, and re-arms itself within the horizon.
// This event type is the mechanism by which the simulation keeps
// generating dynamic load.
type dynamicRequestCheckHandler struct {
	baseHandler
}

func (h *dynamicRequestCheckHandler) Handle(ev Event) error {
	e, ok := ev.(*DynamicRequestCheckEvent)
	if !ok {
		return h.forward(ev)
	}
	s := h.sim
	s.noteHandled(ev, fmt.Sprintf("[t %09.1f] dynamic request check (generate=%v)", e.Time(), e.GenerateNewDynamicRequest()))

	if e.GenerateNewDynamicRequest() {
		if c := s.Generator.NewDynamicCustomer(e.Time()); c != nil {
			s.Customers = append(s.Customers, c)
			s.Events.Insert(s.Generator.CustomerRequest(c, e.Time()+1))
		}
	}
	next := e.Time() + s.Config.DynamicCheckInterval
	if next <= s.Config.Horizon {
		s.Events.Insert(s.Generator.DynamicRequestCheck(next, s.Config.DynamicRequestThreshold))
	}
	return nil
}
