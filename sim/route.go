package sim

// Route is a named collection of trips sharing a stop-sequence family.
type Route struct {
	ID    string
	Name  string
	Trips []*Trip
}

// NewRoute constructs an empty route.
func NewRoute(id, name string) *Route {
	return &Route{ID: id, Name: name}
}

// AddTrip appends a trip to the route and links it back.
func (r *Route) AddTrip(t *Trip) {
	t.Route = r
	r.Trips = append(r.Trips, t)
}
