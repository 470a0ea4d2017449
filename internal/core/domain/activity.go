package domain

import "time"

// Activity log actions recorded by the service. The set is open-ended;
// these constants cover every action the API itself emits.
const (
	ActionAdminLogin            = "admin_login"
	ActionUserUpdated           = "user_updated"
	ActionUserDeleted           = "user_deleted"
	ActionAccessGranted         = "access_granted"
	ActionPackageCreated        = "package_created"
	ActionPackageUpdated        = "package_updated"
	ActionPackageDeleted        = "package_deleted"
	ActionPaymentRecorded       = "payment_recorded"
	ActionPaymentInitiated      = "payment_initiated"
	ActionSubscriptionActivated = "subscription_activated"
	ActionSettingsUpdated       = "settings_updated"
	ActionGroupCreated          = "group_created"
	ActionGroupDeleted          = "group_deleted"
	ActionPostCreated           = "post_created"
	ActionPostDeleted           = "post_deleted"
	ActionFeedCreated           = "feed_created"
	ActionFeedDeleted           = "feed_deleted"
)

// ActivityLog is one audit-trail entry. Exactly one of UserID/AdminID is
// normally set, identifying the actor; both may be set when an admin acts
// on a specific user.
type ActivityLog struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"user_id,omitempty"`
	AdminID     *int64    `json:"admin_id,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
