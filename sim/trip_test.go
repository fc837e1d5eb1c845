package sim

import "testing"

func tripStops(ids ...string) []*Stop {
	out := make([]*Stop, len(ids))
	for i, id := range ids {
		out[i] = NewStop(id, float64(i), float64(i), true)
	}
	return out
}

func uniformWindows(n int) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{float64(i * 100), float64(i*100 + 10)}
	}
	return out
}

func TestNewTrip_RejectsMismatchedSequences(t *testing.T) {
	// GIVEN 3 stops but 2 windows
	_, err := NewTrip("t1", "east", tripStops("a", "b", "c"), uniformWindows(2))

	// THEN construction fails
	if err == nil {
		t.Fatal("NewTrip accepted mismatched stop/window sequences")
	}
}

func TestTrip_Advance_MonotonicAndBounded(t *testing.T) {
	// GIVEN a 3-stop trip
	trip, err := NewTrip("t1", "east", tripStops("a", "b", "c"), uniformWindows(3))
	if err != nil {
		t.Fatal(err)
	}

	// WHEN advancing through the sequence
	prev := trip.Cursor()
	for !trip.IsDone() {
		if err := trip.Advance(); err != nil {
			t.Fatal(err)
		}
		if trip.Cursor() <= prev {
			t.Fatalf("cursor moved backward: %d -> %d", prev, trip.Cursor())
		}
		prev = trip.Cursor()
	}

	// THEN the cursor stops at the last index and cannot move past it
	if trip.Cursor() != 2 {
		t.Errorf("cursor: got %d, want 2", trip.Cursor())
	}
	if err := trip.Advance(); err == nil {
		t.Error("Advance past the last stop must fail")
	}
}

func TestTrip_AssignStops_PreservesVisitedPrefix(t *testing.T) {
	// GIVEN a trip whose cursor has advanced past two stops
	stops := tripStops("a", "b", "c", "d")
	trip, err := NewTrip("t1", "east", stops, uniformWindows(4))
	if err != nil {
		t.Fatal(err)
	}
	_ = trip.Advance()
	_ = trip.Advance() // cursor at index 2

	// WHEN replacing the future suffix with the prefix intact
	newTail := tripStops("x", "y", "z")
	newStops := append([]*Stop{stops[0], stops[1]}, newTail...)
	newWindows := [][2]float64{
		trip.Windows()[0], trip.Windows()[1],
		{500, 510}, {600, 610}, {700, 710},
	}
	if err := trip.AssignStops(newStops, newWindows); err != nil {
		t.Fatalf("AssignStops with intact prefix: %v", err)
	}

	// THEN the visited prefix is untouched and the suffix replaced
	if trip.Stops()[0] != stops[0] || trip.Stops()[1] != stops[1] {
		t.Error("visited prefix was altered")
	}
	if trip.Stops()[2].ID != "x" || len(trip.Stops()) != 5 {
		t.Errorf("future suffix not applied: got %v", trip.Stops())
	}
	if trip.Cursor() != 2 {
		t.Errorf("cursor moved by AssignStops: got %d, want 2", trip.Cursor())
	}
}

func TestTrip_AssignStops_RejectsAlteredPrefix(t *testing.T) {
	// GIVEN a trip with one visited stop
	stops := tripStops("a", "b", "c")
	trip, err := NewTrip("t1", "east", stops, uniformWindows(3))
	if err != nil {
		t.Fatal(err)
	}
	_ = trip.Advance()

	// WHEN the replacement rewrites history at index 0
	altered := tripStops("zzz", "b", "c")
	if err := trip.AssignStops(altered, uniformWindows(3)); err == nil {
		t.Fatal("AssignStops accepted an altered visited prefix")
	}

	// THEN the trip is unchanged
	if trip.Stops()[0] != stops[0] {
		t.Error("failed AssignStops mutated the trip")
	}
}

func TestTrip_Lifecycle(t *testing.T) {
	// GIVEN a fresh trip
	trip, err := NewTrip("t1", "east", tripStops("a", "b"), uniformWindows(2))
	if err != nil {
		t.Fatal(err)
	}
	if trip.State() != TripNotStarted {
		t.Fatalf("initial state: got %s", trip.State())
	}

	// WHEN started and finished
	trip.Start(12)
	trip.Start(99) // second start is a no-op
	trip.Finish(80)

	// THEN timestamps and state follow NotStarted -> Started -> Finished
	if trip.StartTime != 12 {
		t.Errorf("StartTime: got %.0f, want 12", trip.StartTime)
	}
	if trip.State() != TripFinished || trip.EndTime != 80 {
		t.Errorf("final state: got %s at %.0f", trip.State(), trip.EndTime)
	}
}
