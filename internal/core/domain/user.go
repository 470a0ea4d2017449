package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Subscription lifecycle states for an end user.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionSuspended = "suspended"
	SubscriptionLifetime  = "lifetime"
)

// User models an end user authenticated through the OAuth identity provider.
// Records are upserted on login keyed by OpenID; the numeric ID is the
// immutable key used for all relations and ownership checks.
type User struct {
	ID                    int64      `json:"id"`
	OpenID                string     `json:"open_id"`
	Name                  string     `json:"name,omitempty"`
	Email                 string     `json:"email,omitempty"`
	LoginMethod           string     `json:"login_method,omitempty"`
	Role                  string     `json:"role"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionPackageID *int64     `json:"subscription_package_id,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	TrialEndsAt           *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	LastSignedIn          time.Time  `json:"last_signed_in"`
}

// ValidSubscriptionStatus reports whether s is a known subscription state.
func ValidSubscriptionStatus(s string) bool {
	switch s {
	case SubscriptionTrial, SubscriptionActive, SubscriptionExpired,
		SubscriptionSuspended, SubscriptionLifetime:
		return true
	}
	return false
}
