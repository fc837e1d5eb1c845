// Implements the EventList, the simulation's single shared mutable
// collection: a slice of events kept sorted by (time, category).

package sim

import "sort"

// EventList is the global time-ordered event list. It must be sorted by
// (time, category) before dispatch begins and re-established after any
// batch of insertions, deletions or re-timings.
//
// Events with equal (time, category) keep their relative insertion order
// (sort.SliceStable). That relative order is an explicit, documented
// non-determinism boundary: it is stable for a given run but not
// otherwise specified.
type EventList struct {
	events []Event
}

// NewEventList constructs an empty list.
func NewEventList() *EventList {
	return &EventList{}
}

// Insert appends an event. The list is unsorted until the next Sort.
func (l *EventList) Insert(ev Event) {
	if ev == nil {
		return
	}
	l.events = append(l.events, ev)
}

// InsertAll appends a batch of events, skipping nils.
func (l *EventList) InsertAll(evs []Event) {
	for _, ev := range evs {
		l.Insert(ev)
	}
}

// Sort re-establishes (time, category) order, keeping ties stable.
func (l *EventList) Sort() {
	sort.SliceStable(l.events, func(i, j int) bool {
		a, b := l.events[i], l.events[j]
		if a.Time() != b.Time() {
			return a.Time() < b.Time()
		}
		return a.Category() < b.Category()
	})
}

// Len returns the total number of events, handled or not.
func (l *EventList) Len() int { return len(l.events) }

// At returns the event at index i.
func (l *EventList) At(i int) Event { return l.events[i] }

// HandledCount returns the number of events already dispatched.
func (l *EventList) HandledCount() int {
	n := 0
	for _, ev := range l.events {
		if ev.Handled() {
			n++
		}
	}
	return n
}

// FirstUnhandled returns the index of the first unhandled event in list
// order, or -1 when every event has been handled.
func (l *EventList) FirstUnhandled() int {
	for i, ev := range l.events {
		if !ev.Handled() {
			return i
		}
	}
	return -1
}

// PendingForVehicle returns the unhandled vehicle-bound events (arrive,
// depart, enter, leave) for the given vehicle timestamped at or after
// from, in list order.
func (l *EventList) PendingForVehicle(v *Vehicle, from float64) []Event {
	var out []Event
	for _, ev := range l.events {
		if ev.Handled() || ev.Time() < from {
			continue
		}
		if eventVehicle(ev) == v {
			out = append(out, ev)
		}
	}
	return out
}

// Remove deletes every unhandled event for which pred returns true and
// reports how many were removed. Handled events are never removed: they
// are part of the dispatch history the termination predicate counts.
func (l *EventList) Remove(pred func(Event) bool) int {
	kept := l.events[:0]
	removed := 0
	for _, ev := range l.events {
		if !ev.Handled() && pred(ev) {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	l.events = kept
	return removed
}
