package api

import "time"

type Instance struct {
	InstanceID       string     `json:"instanceId"`
	Name             string     `json:"name"`
	State            string     `json:"state"`
	InstanceType     string     `json:"instanceType"`
	PublicIP         *string    `json:"publicIp"`
	PrivateIP        *string    `json:"privateIp"`
	AvailabilityZone string     `json:"az"`
	LaunchTime       *time.Time `json:"launchTime"`
	Platform         string     `json:"platform"`
}

type InstanceList struct {
	Instances []Instance `json:"instances"`
	Total     int        `json:"total"`
}

type InstanceSummary struct {
	Total   int `json:"total"`
	Running int `json:"running"`
	Stopped int `json:"stopped"`
	Other   int `json:"other"`
}
