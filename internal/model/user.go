package model

import "time"

type User struct {
	ID          int64     `json:"id,omitempty"`
	TelegramID  string    `json:"telegram_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	ProfileData string    `json:"profile_data"` // serialized Profile
	CVURL       string    `json:"cv_url"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
