package domain

import "time"

// Admin is a back-office operator account. Admins are provisioned out of
// band (see cmd/adminctl), authenticate with email + password, and operate
// through bearer tokens, a trust domain entirely separate from end-user
// sessions.
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
