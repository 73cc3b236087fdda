package domain

import "time"

type Bucket struct {
	Name      string
	CreatedAt *time.Time
	Region    string
	Public    bool // derived from ACL grantee inspection; false when unknown
}
