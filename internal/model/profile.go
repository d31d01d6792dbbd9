package model

import (
	"encoding/json"
	"errors"
)

// Profile is the structured record extracted from a CV. The extractor is
// instructed to emit exactly these fields; anything else is dropped on
// unmarshal.
type Profile struct {
	FullName       string   `json:"full_name"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	WorkExperience []string `json:"work_experience,omitempty"`
	Education      []string `json:"education,omitempty"`
}

var ErrProfileIncomplete = errors.New("profile is missing a full name")

// ParseProfile validates raw extractor output at the boundary, so nothing
// downstream ever handles an unparsed blob.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.FullName == "" {
		return nil, ErrProfileIncomplete
	}
	return &p, nil
}

// Encode serializes the profile for the profile_data column.
func (p *Profile) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
