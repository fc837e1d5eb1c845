// Package audit collects the append-only validation log produced by the
// simulation's boarding and alighting handlers, and exports it as CSV.
package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Log is an append-only sink of validation records. Single-threaded,
// like the kernel that writes to it.
type Log struct {
	records []Record
	nextID  int
}

// NewLog constructs an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append stores a record, assigning it the next validation id, and
// returns the assigned id.
func (l *Log) Append(r Record) int {
	l.nextID++
	r.ValidationID = l.nextID
	l.records = append(l.records, r)
	return r.ValidationID
}

// Records returns the appended records in order.
func (l *Log) Records() []Record {
	return l.records
}

// Len returns the number of records.
func (l *Log) Len() int { return len(l.records) }

// WriteCSV writes the log with a header row.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{
		"ValidationId", "CustomerId", "Category", "CategorySuccess",
		"VehicleId", "RouteId", "TripId", "ServiceStartTime", "StopId", "EventTime",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write validation log header: %w", err)
	}
	for _, r := range l.records {
		row := []string{
			strconv.Itoa(r.ValidationID),
			r.CustomerID,
			r.Category,
			strconv.FormatBool(r.CategorySuccess),
			r.VehicleID,
			r.RouteID,
			r.TripID,
			strconv.FormatFloat(r.ServiceStartTime, 'f', 1, 64),
			r.StopID,
			strconv.FormatFloat(r.EventTime, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write validation record %d: %w", r.ValidationID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
