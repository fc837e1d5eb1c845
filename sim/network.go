// Spatial network: the stop registry and precomputed pairwise travel
// distances, with a great-circle fallback when no precomputed arc exists.

package sim

import (
	"fmt"
	"math"
	"sort"
)

const earthRadiusMeters = 6371000.0

// Network holds the stops of the service area and a directed distance
// matrix between them, in meters. Distances missing from the matrix fall
// back to the haversine great-circle distance.
type Network struct {
	stops map[string]*Stop
	arcs  map[string]float64
}

// NewNetwork constructs an empty network.
func NewNetwork() *Network {
	return &Network{
		stops: make(map[string]*Stop),
		arcs:  make(map[string]float64),
	}
}

// AddStop registers a stop. Re-registering an id overwrites the entry.
func (n *Network) AddStop(s *Stop) {
	n.stops[s.ID] = s
}

// Stop returns the stop with the given id, or nil.
func (n *Network) Stop(id string) *Stop {
	return n.stops[id]
}

// Stops returns all registered stops sorted by id, so that random
// sampling over them is reproducible for a fixed seed.
func (n *Network) Stops() []*Stop {
	out := make([]*Stop, 0, len(n.stops))
	for _, s := range n.stops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetDistance records a precomputed arc distance in meters, in both
// directions.
func (n *Network) SetDistance(fromID, toID string, meters float64) {
	n.arcs[arcKey(fromID, toID)] = meters
	n.arcs[arcKey(toID, fromID)] = meters
}

// Distance returns the travel distance between two stops in meters,
// using the precomputed arc when present and the haversine great-circle
// distance otherwise. Dummy stops resolve through their shared id.
func (n *Network) Distance(a, b *Stop) float64 {
	if a.SameLocation(b) {
		return 0
	}
	if d, ok := n.arcs[arcKey(a.ID, b.ID)]; ok {
		return d
	}
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// TravelTime returns the time in seconds to cover the given distance at
// the given speed in meters per second.
func (n *Network) TravelTime(distanceMeters, speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return distanceMeters / speed
}

// Haversine returns the great-circle distance in meters between two
// coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

func arcKey(from, to string) string {
	return fmt.Sprintf("%s->%s", from, to)
}
