// The simulation kernel: owns the clock, the global event list, the
// fleet, and the dispatch loop that drains events through the handler
// chain.

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/drt-sim/drt-sim/sim/audit"
)

// Simulator is the core object that holds simulation time, the global
// event list, the fleet, and the handler chain.
//
// Execution is single-threaded and fully deterministic given a fixed
// seed and deterministic solver responses. The event list is the only
// shared mutable collection; anything exposing the simulator as a
// service must serialize all mutating calls through a single execution
// context — concurrent mutation is undefined behavior.
type Simulator struct {
	Clock  float64
	Config *SimConfig

	Events    *EventList
	Network   *Network
	Generator *EventGenerator
	Solver    Solver
	Metrics   *Metrics
	Audit     *audit.Log

	// RNG is the single seeded generator shared process-wide; its state
	// is part of any save/replay of simulation state.
	RNG *rand.Rand

	Vehicles  []*Vehicle
	Customers []*Customer

	chain Handler
}

// NewSimulator wires the kernel together: seeded RNG, event generator,
// handler chain, empty event list.
func NewSimulator(cfg *SimConfig, network *Network, solver Solver) *Simulator {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	s := &Simulator{
		Config:  cfg,
		Events:  NewEventList(),
		Network: network,
		Solver:  solver,
		Metrics: NewMetrics(),
		Audit:   audit.NewLog(),
		RNG:     rng,
	}
	s.Generator = NewEventGenerator(network, rng, cfg.TimeWindow)
	s.chain = newHandlerChain(s)
	return s
}

// AddVehicle registers a vehicle with the fleet.
func (s *Simulator) AddVehicle(v *Vehicle) {
	s.Vehicles = append(s.Vehicles, v)
}

// AddCustomer registers a pre-loaded customer.
func (s *Simulator) AddCustomer(c *Customer) {
	s.Customers = append(s.Customers, c)
}

// Schedule appends an event to the global list. Order is re-established
// before the next dispatch.
func (s *Simulator) Schedule(ev Event) {
	s.Events.Insert(ev)
}

// Bootstrap seeds the initial event load: one arrival per vehicle at its
// first trip's scheduled start, a request event per pre-loaded customer
// at its earliest desired pickup, and the first dynamic request check.
func (s *Simulator) Bootstrap() {
	for _, v := range s.Vehicles {
		trip := v.ActiveTrip()
		if trip == nil {
			continue
		}
		s.Schedule(s.Generator.Arrive(v, trip.ScheduledStart()))
	}
	for _, c := range s.Customers {
		s.Schedule(s.Generator.CustomerRequest(c, c.DesiredTimeWindow[0]))
	}
	if s.Config.DynamicRequestThreshold > 0 {
		s.Schedule(s.Generator.DynamicRequestCheck(s.Config.DynamicCheckInterval, s.Config.DynamicRequestThreshold))
	}
}

// Run drains the event list. The list is live: handlers append, delete
// and re-time events beneath the loop, so iteration is by logical
// position over the re-sorted list, never a frozen snapshot. The run
// terminates when the count of handled events equals the list's length.
func (s *Simulator) Run() error {
	for {
		s.Events.Sort()
		idx := s.Events.FirstUnhandled()
		if idx < 0 {
			break
		}
		ev := s.Events.At(idx)
		if ev.Time() < s.Clock {
			return fmt.Errorf("event order violated: %s at t=%.1f behind clock %.1f",
				ev.Category(), ev.Time(), s.Clock)
		}
		s.Clock = ev.Time()
		logrus.Debugf("[t %09.1f] dispatching %s", s.Clock, ev.Category())
		if err := s.chain.Handle(ev); err != nil {
			return err
		}
	}
	logrus.Infof("[t %09.1f] simulation ended: %d events handled", s.Clock, s.Metrics.HandledEvents)
	return nil
}
