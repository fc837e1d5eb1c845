// Package sim provides the discrete-event simulation kernel for a
// demand-responsive transit fleet.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - event.go: the six event categories and their (time, category) ordering
//   - handler.go: the chain-of-responsibility dispatch that turns one event
//     into zero or more follow-up events
//   - simulator.go: the event loop over the live, re-sorted event list
//
// # Architecture
//
// Vehicles follow fixed or flexible routes; customers request pickup and
// delivery at arbitrary times; the kernel interleaves vehicle movement,
// boarding/alighting and dynamic re-routing in strict (time, category)
// order. The per-vehicle trip progression state machine lives in trip.go
// and vehicle.go; the protocol for inserting an accepted dynamic request
// into an in-flight schedule, and reconciling already-enqueued events, in
// insertion.go.
//
// The vehicle-routing optimizer is consumed as a black box through the
// Solver interface (solver.go); the solver/ package ships a greedy
// cheapest-insertion implementation. The audit sub-package collects the
// append-only validation log written by the boarding and alighting
// handlers.
//
// The kernel is strictly single-threaded: given a fixed seed and
// deterministic solver responses, runs are reproducible. Events with
// equal (time, category) keep stable insertion order; that relative
// order is the one documented non-determinism boundary.
package sim
