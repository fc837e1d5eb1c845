package scenario

import "github.com/drt-sim/drt-sim/sim"

// File is the yaml scenario description: the service area's stops and
// precomputed distances, the routes and trips, the fleet, and the
// customers pre-loaded at simulation start.
type File struct {
	Parameters sim.SimConfig `yaml:"parameters"`
	Stops      []StopDef     `yaml:"stops" validate:"min=2,dive"`
	Distances  []ArcDef      `yaml:"distances" validate:"dive"`
	Routes     []RouteDef    `yaml:"routes" validate:"min=1,dive"`
	Vehicles   []VehicleDef  `yaml:"vehicles" validate:"min=1,dive"`
	Customers  []CustomerDef `yaml:"customers" validate:"dive"`
}

// StopDef declares one stop of the service area.
type StopDef struct {
	ID    string  `yaml:"id" validate:"required"`
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
	Urban bool    `yaml:"urban"`
}

// ArcDef declares a precomputed distance between two stops, in meters.
// Stops without an arc fall back to the great-circle distance.
type ArcDef struct {
	From   string  `yaml:"from" validate:"required"`
	To     string  `yaml:"to" validate:"required"`
	Meters float64 `yaml:"meters" validate:"gt=0"`
}

// RouteDef declares a route and its trips.
type RouteDef struct {
	ID    string    `yaml:"id" validate:"required"`
	Name  string    `yaml:"name"`
	Trips []TripDef `yaml:"trips" validate:"min=1,dive"`
}

// TripDef declares one trip: an ordered stop-id sequence and a parallel
// time-window sequence, one [min, max] pair per stop, in seconds.
type TripDef struct {
	ID       string       `yaml:"id" validate:"required"`
	Headsign string       `yaml:"headsign"`
	Stops    []string     `yaml:"stops" validate:"min=2"`
	Windows  [][2]float64 `yaml:"windows" validate:"min=2"`
}

// VehicleDef declares one vehicle of the fleet and the trips it services.
type VehicleDef struct {
	ID       string   `yaml:"id" validate:"required"`
	Speed    float64  `yaml:"speed" validate:"gt=0"`
	Capacity int      `yaml:"capacity" validate:"gte=0"`
	Flexible bool     `yaml:"flexible"`
	Trips    []string `yaml:"trips" validate:"min=1"`
}

// CustomerDef declares a customer pre-loaded at simulation start. The
// request enters the simulation at the earliest-pickup bound.
type CustomerDef struct {
	ID             string  `yaml:"id" validate:"required"`
	Pickup         string  `yaml:"pickup" validate:"required"`
	Delivery       string  `yaml:"delivery" validate:"required"`
	EarliestPickup float64 `yaml:"earliest_pickup" validate:"gte=0"`
	LatestDelivery float64 `yaml:"latest_delivery" validate:"gtefield=EarliestPickup"`
}
