// Package scenario loads and validates yaml scenario files and
// materializes them into simulation entities.
package scenario

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/drt-sim/drt-sim/sim"
)

// Load reads and validates a scenario file. Omitted simulation
// parameters are filled from sim.DefaultConfig before validation.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates scenario yaml.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	d := sim.DefaultConfig()
	if f.Parameters.Horizon == 0 {
		f.Parameters.Horizon = d.Horizon
	}
	if f.Parameters.TimeWindow == 0 {
		f.Parameters.TimeWindow = d.TimeWindow
	}
	if f.Parameters.MaxRideFactor == 0 {
		f.Parameters.MaxRideFactor = d.MaxRideFactor
	}
	if f.Parameters.DynamicCheckInterval == 0 {
		f.Parameters.DynamicCheckInterval = d.DynamicCheckInterval
	}

	v := validator.New()
	if err := v.Struct(&f); err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}
	return &f, nil
}

// Build materializes a validated scenario into a ready simulator wired
// to the given solver. Bootstrap is left to the caller.
func Build(f *File, solver sim.Solver) (*sim.Simulator, error) {
	network := sim.NewNetwork()
	for _, sd := range f.Stops {
		network.AddStop(sim.NewStop(sd.ID, sd.Lat, sd.Lon, sd.Urban))
	}
	for _, arc := range f.Distances {
		if network.Stop(arc.From) == nil || network.Stop(arc.To) == nil {
			return nil, fmt.Errorf("distance arc %s->%s references unknown stop", arc.From, arc.To)
		}
		network.SetDistance(arc.From, arc.To, arc.Meters)
	}

	trips := make(map[string]*sim.Trip)
	for _, rd := range f.Routes {
		route := sim.NewRoute(rd.ID, rd.Name)
		for _, td := range rd.Trips {
			stops := make([]*sim.Stop, len(td.Stops))
			for i, id := range td.Stops {
				stop := network.Stop(id)
				if stop == nil {
					return nil, fmt.Errorf("trip %s references unknown stop %s", td.ID, id)
				}
				stops[i] = stop
			}
			trip, err := sim.NewTrip(td.ID, td.Headsign, stops, td.Windows)
			if err != nil {
				return nil, err
			}
			route.AddTrip(trip)
			if _, dup := trips[td.ID]; dup {
				return nil, fmt.Errorf("duplicate trip id %s", td.ID)
			}
			trips[td.ID] = trip
		}
	}

	s := sim.NewSimulator(&f.Parameters, network, solver)

	for _, vd := range f.Vehicles {
		v := sim.NewVehicle(vd.ID, vd.Speed, vd.Capacity, vd.Flexible)
		assigned := make([]*sim.Trip, len(vd.Trips))
		for i, id := range vd.Trips {
			trip, ok := trips[id]
			if !ok {
				return nil, fmt.Errorf("vehicle %s references unknown trip %s", vd.ID, id)
			}
			assigned[i] = trip
		}
		v.AssignTrips(assigned)
		s.AddVehicle(v)
	}

	for _, cd := range f.Customers {
		pickup, delivery := network.Stop(cd.Pickup), network.Stop(cd.Delivery)
		if pickup == nil || delivery == nil {
			return nil, fmt.Errorf("customer %s references unknown stop", cd.ID)
		}
		s.AddCustomer(sim.NewCustomer(cd.ID, pickup, delivery, cd.EarliestPickup, cd.LatestDelivery))
	}

	return s, nil
}
