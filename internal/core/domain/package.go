package domain

import "time"

// Package is a purchasable subscription tier. Price is a decimal string to
// preserve precision end to end; Features is a JSON-encoded list rendered by
// the client.
type Package struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	DurationDays  int       `json:"duration_days"`
	MaxGroups     int       `json:"max_groups"`
	MaxPostsPerDay int      `json:"max_posts_per_day"`
	Features      string    `json:"features,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
