package model

import "time"

type Subscription struct {
	ID               int64      `json:"id,omitempty"`
	UserID           int64      `json:"user_id"`
	PackageID        int64      `json:"package_id"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsActive         bool       `json:"is_active"`
	ApplicationsUsed int        `json:"applications_used"`
}
