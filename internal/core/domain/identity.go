package domain

// Identity is the per-request bundle of resolved actors. It is built once by
// the identity middleware as a pure function of the session cookie and the
// Authorization header, and never mutated afterwards.
//
// Both fields may be nil (anonymous request). Both may be non-nil when the
// cookie session and the bearer token independently resolve; guards check
// only the field their trust domain owns, so the combination is never
// ambiguous at enforcement time.
type Identity struct {
	User  *User
	Admin *Admin
}

// Principal is the authenticated actor behind a request. It is a closed set:
// AnonymousPrincipal, UserPrincipal or AdminPrincipal. Code that needs a
// single actor (activity attribution, audit descriptions) switches on the
// concrete type instead of poking at Identity fields.
type Principal interface {
	principal()
}

// AnonymousPrincipal is a request with no resolved identity.
type AnonymousPrincipal struct{}

// UserPrincipal is an end user resolved through either trust domain.
type UserPrincipal struct {
	User *User
}

// AdminPrincipal is an operator resolved through the bearer-token domain.
type AdminPrincipal struct {
	Admin *Admin
}

func (AnonymousPrincipal) principal() {}
func (UserPrincipal) principal()      {}
func (AdminPrincipal) principal()     {}

// Principal projects the identity onto the closed actor set. When both
// identities are present the admin wins: an operator carrying a bearer token
// is acting as an operator regardless of any browser session.
func (id Identity) Principal() Principal {
	switch {
	case id.Admin != nil:
		return AdminPrincipal{Admin: id.Admin}
	case id.User != nil:
		return UserPrincipal{User: id.User}
	default:
		return AnonymousPrincipal{}
	}
}

// IsAnonymous reports whether no identity was resolved.
func (id Identity) IsAnonymous() bool {
	return id.User == nil && id.Admin == nil
}
