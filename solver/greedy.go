// Package solver ships a built-in implementation of the sim.Solver
// boundary: a cheapest-insertion heuristic good enough to exercise the
// kernel end to end. A production deployment would swap in a real
// vehicle-routing solver behind the same interface.
package solver

import (
	"math"

	"github.com/drt-sim/drt-sim/sim"
)

// Greedy serves a new request with the single vehicle whose rebuilt
// schedule adds the least distance. Per vehicle it orders the work as:
// dummy start, onboard deliveries, then pickup/delivery pairs for the
// expected customers and the new request, then the end depot.
type Greedy struct {
	// DwellTime is the per-stop service time granted for boarding and
	// alighting, in seconds.
	DwellTime float64
}

// NewGreedy returns a Greedy with a 30s dwell time.
func NewGreedy() *Greedy {
	return &Greedy{DwellTime: 30}
}

// Solve returns a one-vehicle solution, or (nil, false) when no vehicle
// can feasibly absorb the new request.
func (g *Greedy) Solve(snap *sim.Snapshot) (*sim.Solution, bool) {
	var best *sim.Plan
	bestCost := math.Inf(1)
	for i := range snap.Vehicles {
		plan, cost, ok := g.planFor(snap, &snap.Vehicles[i])
		if ok && cost < bestCost {
			best, bestCost = plan, cost
		}
	}
	if best == nil {
		return nil, false
	}
	return &sim.Solution{Plans: []*sim.Plan{best}}, true
}

func (g *Greedy) planFor(snap *sim.Snapshot, vs *sim.VehicleSnapshot) (*sim.Plan, float64, bool) {
	onboard := make(map[string]bool, len(vs.Onboard))
	for _, c := range vs.Onboard {
		onboard[c.ID] = true
	}

	// Work sequence: deliveries owed to onboard customers first, then
	// full pickup/delivery pairs for everyone not yet aboard.
	type visit struct {
		stop   *sim.Stop
		load   int // +1 pickup, -1 delivery, 0 depot
		forNew bool
		isPick bool
	}
	visits := []visit{{stop: vs.Start}}
	for _, c := range vs.Onboard {
		visits = append(visits, visit{stop: c.Delivery, load: -1})
	}
	for _, c := range vs.Candidates {
		if onboard[c.ID] || c.AlreadyServed {
			continue
		}
		isNew := c == snap.NewCustomer
		visits = append(visits,
			visit{stop: c.Pickup, load: +1, forNew: isNew, isPick: true},
			visit{stop: c.Delivery, load: -1, forNew: isNew},
		)
	}
	visits = append(visits, visit{stop: vs.End})

	stops := make([]*sim.Stop, 0, len(visits))
	windows := make([][2]float64, 0, len(visits))
	load := len(vs.Onboard)
	t := vs.AvailableAt
	cost := 0.0
	var newPickupAt, newDeliveryAt float64

	for i, vst := range visits {
		if i > 0 {
			d := snap.Network.Distance(visits[i-1].stop, vst.stop)
			cost += d
			t += snap.Network.TravelTime(d, vs.Vehicle.Speed) + g.DwellTime
		}
		load += vst.load
		if load > vs.Vehicle.Capacity {
			return nil, 0, false
		}
		if vst.forNew {
			if vst.isPick {
				newPickupAt = t
			} else {
				newDeliveryAt = t
			}
		}
		stops = append(stops, vst.stop)
		windows = append(windows, [2]float64{t, t + g.DwellTime})
	}

	// Window and ride-time bounds for the new request.
	c := snap.NewCustomer
	if newDeliveryAt > c.DesiredTimeWindow[1] {
		return nil, 0, false
	}
	direct := snap.Network.TravelTime(snap.Network.Distance(c.Pickup, c.Delivery), vs.Vehicle.Speed)
	if direct > 0 && newDeliveryAt-newPickupAt > snap.MaxRideFactor*direct+g.DwellTime {
		return nil, 0, false
	}

	return &sim.Plan{
		Vehicle:     vs.Vehicle,
		Stops:       stops,
		TimeWindows: windows,
		Customers:   append([]*sim.Customer(nil), vs.Candidates...),
	}, cost, true
}
