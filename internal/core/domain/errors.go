package domain

import "errors"

// Sentinel errors mapped to HTTP status codes once, at the transport edge
// (see internal/api/error_handler.go). Authentication failures never reach
// this layer: the identity middleware absorbs them into an anonymous
// identity; only authorization and lookup failures travel as errors.
var (
	// ErrUnauthorized: no usable credential for the trust domain a guard
	// requires (maps to 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials: a credential was presented and rejected, e.g.
	// wrong admin password (maps to 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden: valid identity, insufficient privilege or not the owner
	// of the target record (maps to 403).
	ErrForbidden = errors.New("forbidden")

	// ErrTooManyAttempts: login throttled (maps to 429).
	ErrTooManyAttempts = errors.New("too many attempts")

	ErrUserNotFound    = errors.New("user not found")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrPackageNotFound = errors.New("package not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrFeedNotFound    = errors.New("feed not found")
	ErrSettingNotFound = errors.New("setting not found")

	ErrUserExists  = errors.New("user already exists")
	ErrAdminExists = errors.New("admin already exists")
)
