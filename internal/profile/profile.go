package profile

import (
	"errors"
	"time"
)

// Profile holds the single user's master resume and skill list.
type Profile struct {
	ResumeText  string    `json:"resumeText"`
	Skills      []string  `json:"skills"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// HasResume reports whether a master resume has been saved.
func (p Profile) HasResume() bool {
	return p.ResumeText != ""
}

var (
	ErrNotFound     = errors.New("profile not found")
	ErrInvalidInput = errors.New("invalid input")
)
