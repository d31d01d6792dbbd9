package model

import "time"

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationAccepted  ApplicationStatus = "accepted"
)

type Application struct {
	ID          int64             `json:"id,omitempty"`
	UserID      int64             `json:"user_id"`
	JobTitle    string            `json:"job_title"`
	Company     string            `json:"company"`
	Status      ApplicationStatus `json:"status"`
	AppliedDate time.Time         `json:"applied_date"`
	CoverLetter string            `json:"cover_letter"`
}
