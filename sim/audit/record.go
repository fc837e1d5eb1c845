package audit

// Record is one structured validation entry appended when a boarding or
// alighting event is handled. It is an observability side effect only
// and never feeds back into control flow.
type Record struct {
	ValidationID     int
	CustomerID       string
	Category         string
	CategorySuccess  bool
	VehicleID        string
	RouteID          string
	TripID           string
	ServiceStartTime float64
	StopID           string
	EventTime        float64
}
