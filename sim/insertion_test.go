package sim

import "testing"

// insertionFixture: a flexible vehicle mid-trip at stop a, bound for b,
// with pending events already enqueued.
func insertionFixture(t *testing.T, solve func(*Snapshot) (*Solution, bool)) (*Simulator, *Vehicle, *Trip) {
	t.Helper()
	n := testNetwork("a", "b", "c")
	n.SetDistance("a", "b", 1000)
	n.SetDistance("a", "c", 800)
	n.SetDistance("c", "b", 600)

	trip, err := NewTrip("t1", "ondemand", tripStops("a", "b"), [][2]float64{{0, 10}, {100, 110}})
	if err != nil {
		t.Fatal(err)
	}
	v := NewVehicle("v1", 10, 4, true)
	v.AssignTrips([]*Trip{trip})

	s := NewSimulator(testConfig(), n, &stubSolver{fn: solve})
	s.AddVehicle(v)
	return s, v, trip
}

func TestInsertRequest_InfeasibleLeavesEverythingUntouched(t *testing.T) {
	// GIVEN a solver that finds no feasible solution
	s, v, trip := insertionFixture(t, nil)
	c := NewCustomer("dyn1", s.Network.Stop("c"), s.Network.Stop("b"), 40, 2000)
	c.Dynamic = true
	s.Schedule(s.Generator.CustomerRequest(c, 40))
	stopsBefore := append([]*Stop(nil), trip.Stops()...)

	// WHEN the simulation dispatches the request
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// THEN the dynamic request is counted but not served
	if s.Metrics.TotalDynamicRequests != 1 {
		t.Errorf("total dynamic requests: got %d, want 1", s.Metrics.TotalDynamicRequests)
	}
	if s.Metrics.TotalServedDynamicRequests != 0 {
		t.Errorf("served dynamic requests: got %d, want 0", s.Metrics.TotalServedDynamicRequests)
	}
	// AND no events were added beyond the request itself
	if s.Events.Len() != 1 {
		t.Errorf("event list grew: %d events", s.Events.Len())
	}
	// AND no entity was mutated
	for i, stop := range trip.Stops() {
		if stop != stopsBefore[i] {
			t.Fatal("trip schedule mutated by an infeasible request")
		}
	}
	if len(trip.Expected) != 0 || len(v.Onboard) != 0 {
		t.Error("vehicle state mutated by an infeasible request")
	}
}

func TestInsertRequest_NilCustomerIsCallerDefect(t *testing.T) {
	s, _, _ := insertionFixture(t, nil)
	if _, _, err := s.InsertRequest(nil, 0); err == nil {
		t.Fatal("nil customer must fail fast")
	}
}

func TestInsertRequest_AppliesPlanAndReconcilesPendingEvents(t *testing.T) {
	// GIVEN a solver that reroutes the vehicle through stop c
	newC := &Customer{} // filled in below once stops exist
	solve := func(snap *Snapshot) (*Solution, bool) {
		vs := snap.Vehicles[0]
		return &Solution{Plans: []*Plan{{
			Vehicle:     vs.Vehicle,
			Stops:       []*Stop{vs.Start, snap.NewCustomer.Pickup, snap.NewCustomer.Delivery},
			TimeWindows: [][2]float64{{60, 70}, {200, 210}, {300, 310}},
			Customers:   []*Customer{snap.NewCustomer},
		}}}, true
	}
	s, v, trip := insertionFixture(t, solve)
	*newC = *NewCustomer("dyn1", s.Network.Stop("c"), s.Network.Stop("b"), 40, 2000)

	other := NewVehicle("v2", 10, 4, true)
	otherTrip, _ := NewTrip("t2", "other", tripStops("a", "c"), [][2]float64{{0, 10}, {90, 95}})
	other.AssignTrips([]*Trip{otherTrip})

	rider := NewCustomer("r1", s.Network.Stop("a"), s.Network.Stop("b"), 0, 2000)
	depart := &VehicleDepartEvent{baseEvent: baseEvent{time: 50}, Vehicle: v, Stop: trip.CurrentStop()}
	enter := &CustomerEnterEvent{baseEvent: baseEvent{time: 55}, Customer: rider, Vehicle: v}
	leave := &CustomerLeaveEvent{baseEvent: baseEvent{time: 56}, Customer: rider, Vehicle: v}
	arrive := &VehicleArriveEvent{baseEvent: baseEvent{time: 60}, Vehicle: v, Stop: trip.Stops()[1]}
	otherEnter := &CustomerEnterEvent{baseEvent: baseEvent{time: 57}, Customer: rider, Vehicle: other}
	for _, ev := range []Event{depart, enter, leave, arrive, otherEnter} {
		s.Events.Insert(ev)
	}
	s.Events.Sort()

	// WHEN the request is inserted at t=40
	sol, ok, err := s.InsertRequest(newC, 40)
	if err != nil {
		t.Fatalf("InsertRequest: %v", err)
	}
	if !ok || sol == nil {
		t.Fatal("feasible insertion reported unserved")
	}

	// THEN the trip now follows the solver's schedule, dummy start first
	if len(trip.Stops()) != 3 || !trip.CurrentStop().Dummy || trip.Stops()[1].ID != "c" {
		t.Fatalf("rewritten schedule: got %v", trip.Stops())
	}
	// AND the expected set is exactly the returned, not-yet-onboard customers
	if len(trip.Expected) != 1 || trip.Expected["dyn1"] == nil {
		t.Errorf("expected set: got %v", trip.Expected)
	}
	// AND the pending depart at the current stop was re-timed to the new
	// departure bound plus one unit
	if depart.Time() != 71 {
		t.Errorf("depart re-timed to %.1f, want 71", depart.Time())
	}
	// AND this vehicle's pending board/alight events were deleted
	for i := 0; i < s.Events.Len(); i++ {
		ev := s.Events.At(i)
		if eventVehicle(ev) == v {
			cat := ev.Category()
			if cat == CategoryCustomerEnter || cat == CategoryCustomerLeave {
				t.Fatalf("pending %s for affected vehicle survived reconciliation", cat)
			}
		}
	}
	// AND the other vehicle's events and this vehicle's arrival survived
	found := 0
	for i := 0; i < s.Events.Len(); i++ {
		switch s.Events.At(i) {
		case Event(otherEnter), Event(arrive), Event(depart):
			found++
		}
	}
	if found != 3 {
		t.Errorf("reconciliation touched events it must not: %d of 3 survivors", found)
	}
	// AND the list is sorted again
	for i := 1; i < s.Events.Len(); i++ {
		a, b := s.Events.At(i-1), s.Events.At(i)
		if a.Time() > b.Time() || (a.Time() == b.Time() && a.Category() > b.Category()) {
			t.Fatal("event list not re-sorted after reconciliation")
		}
	}
}

func TestInsertRequest_VisitedPrefixSurvivesMidTripRewrite(t *testing.T) {
	// GIVEN a vehicle that has already visited its first stop
	solve := func(snap *Snapshot) (*Solution, bool) {
		vs := snap.Vehicles[0]
		return &Solution{Plans: []*Plan{{
			Vehicle:     vs.Vehicle,
			Stops:       []*Stop{vs.Start, snap.NewCustomer.Pickup, snap.NewCustomer.Delivery},
			TimeWindows: [][2]float64{{60, 70}, {200, 210}, {300, 310}},
			Customers:   []*Customer{snap.NewCustomer},
		}}}, true
	}
	s, _, trip := insertionFixture(t, solve)
	visited := trip.Stops()[0]
	_ = trip.Advance() // cursor at index 1, stop b

	newC := NewCustomer("dyn1", s.Network.Stop("c"), s.Network.Stop("b"), 40, 2000)
	if _, ok, err := s.InsertRequest(newC, 40); err != nil || !ok {
		t.Fatalf("InsertRequest: ok=%v err=%v", ok, err)
	}

	// THEN index 0 still holds the actually-visited stop
	if trip.Stops()[0] != visited {
		t.Fatal("visited prefix rewritten by insertion")
	}
	if trip.Cursor() != 1 {
		t.Errorf("cursor moved: got %d", trip.Cursor())
	}
	if len(trip.Stops()) != 4 {
		t.Errorf("sequence length: got %d, want 1 visited + 3 planned", len(trip.Stops()))
	}
}

func TestBuildSnapshot_AvailabilityBoundedByPendingArrivals(t *testing.T) {
	// GIVEN a moving vehicle with arrivals enqueued at t=80 and t=95
	var captured *Snapshot
	solve := func(snap *Snapshot) (*Solution, bool) {
		captured = snap
		return nil, false
	}
	s, v, trip := insertionFixture(t, solve)
	v.IsIdle = false
	s.Events.Insert(&VehicleArriveEvent{baseEvent: baseEvent{time: 80}, Vehicle: v, Stop: trip.Stops()[1]})
	s.Events.Insert(&VehicleArriveEvent{baseEvent: baseEvent{time: 95}, Vehicle: v, Stop: trip.Stops()[1]})
	s.Events.Sort()

	// WHEN building the snapshot via an (infeasible) insertion at t=40
	newC := NewCustomer("dyn1", s.Network.Stop("c"), s.Network.Stop("b"), 40, 2000)
	if _, ok, err := s.InsertRequest(newC, 40); err != nil || ok {
		t.Fatalf("stub must report infeasible: ok=%v err=%v", ok, err)
	}

	// THEN availability is the latest pending arrival
	if captured == nil || len(captured.Vehicles) != 1 {
		t.Fatal("snapshot not captured")
	}
	vs := captured.Vehicles[0]
	if vs.AvailableAt != 95 {
		t.Errorf("availability: got %.1f, want 95", vs.AvailableAt)
	}
	// AND the start stop is a dummy sharing the current stop's id
	if !vs.Start.Dummy || vs.Start.ID != trip.CurrentStop().ID || vs.Start == trip.CurrentStop() {
		t.Errorf("dummy start: got %v", vs.Start)
	}
	// AND the new customer joined the candidate pool
	if len(vs.Candidates) != 1 || vs.Candidates[0] != newC {
		t.Errorf("candidates: got %v", vs.Candidates)
	}
}

func TestBuildSnapshot_IdleVehicleAvailableNow(t *testing.T) {
	// GIVEN an idle vehicle with a (stale) pending arrival
	var captured *Snapshot
	solve := func(snap *Snapshot) (*Solution, bool) {
		captured = snap
		return nil, false
	}
	s, v, trip := insertionFixture(t, solve)
	v.IsIdle = true
	s.Events.Insert(&VehicleArriveEvent{baseEvent: baseEvent{time: 80}, Vehicle: v, Stop: trip.Stops()[1]})
	s.Events.Sort()

	newC := NewCustomer("dyn1", s.Network.Stop("c"), s.Network.Stop("b"), 40, 2000)
	_, _, _ = s.InsertRequest(newC, 40)

	// THEN availability is the current event time
	if captured.Vehicles[0].AvailableAt != 40 {
		t.Errorf("idle availability: got %.1f, want 40", captured.Vehicles[0].AvailableAt)
	}
}
