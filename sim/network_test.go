package sim

import (
	"math"
	"testing"
)

func TestNetwork_Distance_PrefersPrecomputedArc(t *testing.T) {
	// GIVEN two stops with a precomputed arc
	n := NewNetwork()
	a := NewStop("a", 59.33, 18.06, true)
	b := NewStop("b", 59.34, 18.07, true)
	n.AddStop(a)
	n.AddStop(b)
	n.SetDistance("a", "b", 1500)

	// THEN the arc wins over the great-circle distance, both ways
	if d := n.Distance(a, b); d != 1500 {
		t.Errorf("Distance a->b: got %.0f, want 1500", d)
	}
	if d := n.Distance(b, a); d != 1500 {
		t.Errorf("Distance b->a: got %.0f, want 1500", d)
	}
}

func TestNetwork_Distance_FallsBackToHaversine(t *testing.T) {
	// GIVEN two stops without a precomputed arc, ~111km apart on a meridian
	n := NewNetwork()
	a := NewStop("a", 0, 0, false)
	b := NewStop("b", 1, 0, false)
	n.AddStop(a)
	n.AddStop(b)

	// WHEN computing the distance
	d := n.Distance(a, b)

	// THEN it is the great-circle distance
	if math.Abs(d-111195) > 100 {
		t.Errorf("haversine fallback: got %.0fm, want ~111195m", d)
	}
}

func TestNetwork_Distance_DummyResolvesThroughSharedID(t *testing.T) {
	// GIVEN a dummy copy of a stop
	n := NewNetwork()
	a := NewStop("a", 0, 0, true)
	b := NewStop("b", 0, 1, true)
	n.AddStop(a)
	n.AddStop(b)
	n.SetDistance("a", "b", 900)

	// THEN the dummy reaches the same precomputed arc
	if d := n.Distance(a.CloneDummy(), b); d != 900 {
		t.Errorf("dummy distance: got %.0f, want 900", d)
	}
	// AND the dummy is at zero distance from its real counterpart
	if d := n.Distance(a.CloneDummy(), a); d != 0 {
		t.Errorf("dummy to real: got %.0f, want 0", d)
	}
}

func TestNetwork_TravelTime(t *testing.T) {
	n := NewNetwork()
	if tt := n.TravelTime(1000, 10); tt != 100 {
		t.Errorf("TravelTime: got %.0f, want 100", tt)
	}
	if tt := n.TravelTime(1000, 0); tt != 0 {
		t.Errorf("TravelTime at zero speed: got %.0f, want 0", tt)
	}
}
