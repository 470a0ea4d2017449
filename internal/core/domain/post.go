package domain

import "time"

// Post publication states.
const (
	PostDraft     = "draft"
	PostScheduled = "scheduled"
	PostPosting   = "posting"
	PostCompleted = "completed"
	PostFailed    = "failed"
)

// Post schedule kinds.
const (
	ScheduleOnce   = "once"
	ScheduleDaily  = "daily"
	ScheduleWeekly = "weekly"
	ScheduleCustom = "custom"
)

// Post is a piece of content a user prepared for publication to one or more
// of their groups. SpintaxContent keeps the raw template; MediaURLs,
// GroupsToPost and ScheduleConfig are JSON-encoded strings owned by the
// client. The posting engine that consumes scheduled posts lives outside
// this service.
type Post struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	Content           string     `json:"content"`
	SpintaxContent    string     `json:"spintax_content,omitempty"`
	MediaURLs         string     `json:"media_urls,omitempty"`
	ScheduledAt       *time.Time `json:"scheduled_at,omitempty"`
	Status            string     `json:"status"`
	GroupsToPost      string     `json:"groups_to_post,omitempty"`
	DelayBetweenPosts int        `json:"delay_between_posts"`
	ScheduleType      string     `json:"schedule_type"`
	ScheduleConfig    string     `json:"schedule_config,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ValidPostStatus reports whether s is a known publication state.
func ValidPostStatus(s string) bool {
	switch s {
	case PostDraft, PostScheduled, PostPosting, PostCompleted, PostFailed:
		return true
	}
	return false
}
