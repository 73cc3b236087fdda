package domain

import "time"

type Instance struct {
	ID               string
	Name             string // "Unnamed" when the instance has no Name tag
	State            string // pending | running | stopping | stopped | shutting-down | terminated
	Type             string
	PublicIP         *string
	PrivateIP        *string
	AvailabilityZone string
	LaunchTime       *time.Time
	Platform         string // "linux" unless the API reports otherwise
}

type InstanceSummary struct {
	Total   int
	Running int
	Stopped int
	Other   int
}
