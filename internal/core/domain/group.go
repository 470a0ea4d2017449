package domain

import "time"

// Group is a Facebook group registered by a user as a posting target.
// GroupID/GroupURL identify the group on Facebook; UserID is the owner and
// every mutation must be checked against it.
type Group struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	GroupID   string    `json:"group_id"`
	GroupName string    `json:"group_name"`
	GroupURL  string    `json:"group_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
