package domain

import "time"

type Datapoint struct {
	Timestamp time.Time
	Average   float64 // rounded to 2 decimal places
	Maximum   float64 // rounded to 2 decimal places
}

// MetricSeries holds one instance's statistics, ascending by timestamp.
// An empty Datapoints slice is a valid outcome, not an error.
type MetricSeries struct {
	InstanceID string
	Metric     string
	Datapoints []Datapoint
}
