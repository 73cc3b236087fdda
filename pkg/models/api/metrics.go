package api

import "time"

type Datapoint struct {
	Timestamp time.Time `json:"timestamp"`
	Average   float64   `json:"average"`
	Maximum   float64   `json:"maximum"`
}

type MetricSeries struct {
	InstanceID string      `json:"instanceId"`
	Metric     string      `json:"metric"`
	Datapoints []Datapoint `json:"datapoints"`
}

type MetricsOverview struct {
	AvgCPU *float64 `json:"avgCPU"`
}
