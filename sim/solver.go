// The optimizer boundary. The kernel never performs constraint
// optimization itself: it builds a routing snapshot, asks a Solver for a
// feasible set of per-vehicle plans, and applies the result. Solver
// failure is a normal, expected outcome, never a fatal error.

package sim

// VehicleSnapshot freezes one flexible vehicle's routing state for the
// solver: a dummy start stop standing in for the vehicle's current
// position, the real end depot, the earliest time the vehicle can be
// assumed available at the start, and the customers it is responsible
// for (expected-but-unboarded plus currently onboard plus the new
// request).
type VehicleSnapshot struct {
	Vehicle     *Vehicle
	Start       *Stop // dummy copy of the current stop
	End         *Stop // real depot at the end of the current trip
	AvailableAt float64
	Candidates  []*Customer
	Onboard     []*Customer
}

// Snapshot is the full routing problem handed to the solver.
type Snapshot struct {
	Time          float64
	NewCustomer   *Customer
	Vehicles      []VehicleSnapshot
	Network       *Network
	TimeWindow    float64
	MaxRideFactor float64
}

// Plan is the solver's schedule for a single vehicle. Stops, time
// windows and assigned customers travel together in one record so the
// three can never drift out of alignment.
type Plan struct {
	Vehicle     *Vehicle
	Stops       []*Stop
	TimeWindows [][2]float64
	Customers   []*Customer
}

// Solution is a feasible answer: one plan per vehicle the solver
// touched. Vehicles without a plan are unaffected.
type Solution struct {
	Plans []*Plan
}

// Solver is the external vehicle-routing optimizer, consumed as an
// opaque solve-and-return black box. The second return value is false
// when no feasible solution exists, which callers treat as a normal
// outcome: the request simply goes unserved.
type Solver interface {
	Solve(snap *Snapshot) (*Solution, bool)
}
