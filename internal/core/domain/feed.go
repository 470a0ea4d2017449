package domain

import "time"

// Feed is an RSS source a user registered for content automation. Fetching
// and content generation happen outside this service; the API only manages
// the records.
type Feed struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	FeedURL       string     `json:"feed_url"`
	FeedName      string     `json:"feed_name"`
	IsActive      bool       `json:"is_active"`
	LastFetchedAt *time.Time `json:"last_fetched_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
