// Tracks simulation-wide counters and per-customer service quality
// metrics for final reporting.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about the simulation for final
// reporting. Counters are incremented by the handler chain; the
// per-customer samples are recorded as customers are delivered.
type Metrics struct {
	HandledEvents              int
	TotalRequests              int
	TotalDynamicRequests       int
	TotalServedDynamicRequests int
	BoardingFailures           int
	BoardedCustomers           int
	DeliveredCustomers         int
	FinishedTrips              int

	waitTimes  []float64
	delayTimes []float64
	rideTimes  []float64
}

// NewMetrics constructs zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordDelivery captures a delivered customer's wait, delay and ride
// samples.
func (m *Metrics) RecordDelivery(c *Customer) {
	if w, ok := c.WaitTime(); ok {
		m.waitTimes = append(m.waitTimes, w)
	}
	if d, ok := c.DelayTime(); ok {
		m.delayTimes = append(m.delayTimes, d)
	}
	if r, ok := c.RideTime(); ok {
		m.rideTimes = append(m.rideTimes, r)
	}
}

// summary holds mean and upper-quantile values of one sample set.
type summary struct {
	Mean float64
	P90  float64
}

func summarize(samples []float64) (summary, bool) {
	if len(samples) == 0 {
		return summary{}, false
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	return summary{
		Mean: stat.Mean(sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}, true
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Handled Events          : %d\n", m.HandledEvents)
	fmt.Printf("Total Requests          : %d\n", m.TotalRequests)
	fmt.Printf("Dynamic Requests        : %d\n", m.TotalDynamicRequests)
	fmt.Printf("Served Dynamic Requests : %d\n", m.TotalServedDynamicRequests)
	fmt.Printf("Boarded Customers       : %d\n", m.BoardedCustomers)
	fmt.Printf("Delivered Customers     : %d\n", m.DeliveredCustomers)
	fmt.Printf("Boarding Failures       : %d\n", m.BoardingFailures)
	fmt.Printf("Finished Trips          : %d\n", m.FinishedTrips)
	if s, ok := summarize(m.waitTimes); ok {
		fmt.Printf("Wait Time  (mean/p90)   : %.1fs / %.1fs\n", s.Mean, s.P90)
	}
	if s, ok := summarize(m.delayTimes); ok {
		fmt.Printf("Delay Time (mean/p90)   : %.1fs / %.1fs\n", s.Mean, s.P90)
	}
	if s, ok := summarize(m.rideTimes); ok {
		fmt.Printf("Ride Time  (mean/p90)   : %.1fs / %.1fs\n", s.Mean, s.P90)
	}
}
