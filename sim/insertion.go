// The dynamic insertion and reconciliation protocol: how a newly
// accepted request is worked into an in-flight vehicle schedule without
// corrupting events already enqueued for other vehicles.
//
// The protocol never mutates a trip's visited prefix, never touches
// events belonging to vehicles outside the affected set, and always
// leaves the global event list re-sorted before control returns to the
// simulation loop.

package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// InsertRequest runs the dynamic insertion protocol for customer c at
// the current event time. The boolean is false when no flexible vehicle
// is available or the solver finds no feasible solution; in either case
// no entity has been mutated. An error signals a caller defect (nil
// customer) or a solver plan violating the visited-prefix invariant.
func (s *Simulator) InsertRequest(c *Customer, now float64) (*Solution, bool, error) {
	if c == nil {
		return nil, false, fmt.Errorf("insert request: nil customer")
	}

	snap := s.buildSnapshot(c, now)
	if len(snap.Vehicles) == 0 {
		return nil, false, nil
	}

	sol, ok := s.Solver.Solve(snap)
	if !ok || sol == nil {
		return nil, false, nil
	}

	if err := s.applySolution(sol); err != nil {
		return nil, false, err
	}
	s.reconcile(sol, now)
	s.Events.Sort()
	return sol, true, nil
}

// buildSnapshot freezes every flexible vehicle with an active trip: its
// expected-but-unboarded customers, its onboard customers, a dummy stop
// standing in for its current position, and its earliest availability
// time. The new customer joins every vehicle's candidate pool.
func (s *Simulator) buildSnapshot(c *Customer, now float64) *Snapshot {
	snap := &Snapshot{
		Time:          now,
		NewCustomer:   c,
		Network:       s.Network,
		TimeWindow:    s.Config.TimeWindow,
		MaxRideFactor: s.Config.MaxRideFactor,
	}
	for _, v := range s.Vehicles {
		if !v.FlexibleRouting {
			continue
		}
		trip := v.ActiveTrip()
		if trip == nil {
			continue
		}

		// Earliest availability at the dummy start: now when idle, else
		// lower-bounded by every arrival already enqueued for this
		// vehicle.
		avail := now
		if !v.IsIdle {
			for _, ev := range s.Events.PendingForVehicle(v, now) {
				if _, isArrive := ev.(*VehicleArriveEvent); isArrive && ev.Time() > avail {
					avail = ev.Time()
				}
			}
		}

		expected := make([]*Customer, 0, len(trip.Expected))
		for _, ec := range trip.Expected {
			expected = append(expected, ec)
		}
		sort.Slice(expected, func(i, j int) bool { return expected[i].ID < expected[j].ID })

		candidates := make([]*Customer, 0, len(expected)+len(v.Onboard)+1)
		candidates = append(candidates, expected...)
		candidates = append(candidates, v.Onboard...)
		candidates = append(candidates, c)

		stops := trip.Stops()
		snap.Vehicles = append(snap.Vehicles, VehicleSnapshot{
			Vehicle:     v,
			Start:       trip.CurrentStop().CloneDummy(),
			End:         stops[len(stops)-1],
			AvailableAt: avail,
			Candidates:  candidates,
			Onboard:     v.Onboard,
		})
	}
	return snap
}

// applySolution rewrites each planned vehicle's future schedule: the
// actual visited stop prefix is prepended by index — never re-derived
// from the solution — and the trip's expected set becomes exactly the
// returned customers not yet onboard.
func (s *Simulator) applySolution(sol *Solution) error {
	for _, plan := range sol.Plans {
		v := plan.Vehicle
		trip := v.ActiveTrip()
		if trip == nil {
			return fmt.Errorf("solution plan for vehicle %s without an active trip", v.ID)
		}
		cur := trip.Cursor()

		stops := make([]*Stop, 0, cur+len(plan.Stops))
		stops = append(stops, trip.Stops()[:cur]...)
		stops = append(stops, plan.Stops...)

		windows := make([][2]float64, 0, cur+len(plan.TimeWindows))
		windows = append(windows, trip.Windows()[:cur]...)
		windows = append(windows, plan.TimeWindows...)

		if err := trip.AssignStops(stops, windows); err != nil {
			return err
		}

		var expected []*Customer
		for _, pc := range plan.Customers {
			if !pc.IsInVehicle && !pc.AlreadyServed {
				expected = append(expected, pc)
			}
		}
		trip.SetExpected(expected)
		logrus.Debugf("vehicle %s rescheduled: %d future stops, %d expected customers",
			v.ID, len(plan.Stops), len(expected))
	}
	return nil
}

// reconcile fixes the pending event list for every affected vehicle:
// departs whose stop matches the vehicle's (possibly now-different)
// current stop are re-timed to the new scheduled departure bound plus
// one unit; all pending boarding/alighting events in the window are
// deleted unconditionally — the next arrival dispatch regenerates them
// correctly under the new schedule.
func (s *Simulator) reconcile(sol *Solution, now float64) {
	for _, plan := range sol.Plans {
		v := plan.Vehicle
		trip := v.ActiveTrip()
		if trip == nil {
			continue
		}
		for _, ev := range s.Events.PendingForVehicle(v, now) {
			if dep, ok := ev.(*VehicleDepartEvent); ok && dep.Stop.SameLocation(trip.CurrentStop()) {
				dep.SetTime(trip.DepartureBound(trip.Cursor()) + 1)
			}
		}
		s.Events.Remove(func(ev Event) bool {
			if ev.Time() < now || eventVehicle(ev) != v {
				return false
			}
			cat := ev.Category()
			return cat == CategoryCustomerEnter || cat == CategoryCustomerLeave
		})
	}
}
