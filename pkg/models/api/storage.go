package api

import "time"

type Bucket struct {
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt"`
	Region    string     `json:"region"`
	IsPublic  bool       `json:"isPublic"`
}

type BucketList struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
}
