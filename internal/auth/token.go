// Package auth implements the credential primitives shared by both trust
// domains: HS256 bearer/session tokens, pbkdf2 password hashes, and
// Authorization header parsing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim subject types. A token identifies exactly one kind of actor.
const (
	TypeUser  = "user"
	TypeAdmin = "admin"
)

// DefaultTokenTTL is the token lifetime used when the caller does not
// override it at issuance.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the decoded payload of a signed token. Exactly one of
// UserID/AdminID is populated, matching Type.
type Claims struct {
	Type    string `json:"type"`
	UserID  int64  `json:"userId,omitempty"`
	AdminID int64  `json:"adminId,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier issues and validates signed tokens with a process-wide symmetric
// secret. The secret is read once at startup and never changes afterwards.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a Verifier signing with the given secret. An empty
// secret is a startup misconfiguration, reported once here rather than on
// every request.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is empty")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Issue signs the given claims with issued-at now and expiry now+ttl.
// A non-positive ttl falls back to DefaultTokenTTL.
func (v *Verifier) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(v.secret)
}

// IssueUserToken issues a user-typed token, the payload carried by session
// cookies and user bearer tokens.
func (v *Verifier) IssueUserToken(userID int64, email string, ttl time.Duration) (string, error) {
	return v.Issue(Claims{Type: TypeUser, UserID: userID, Email: email}, ttl)
}

// IssueAdminToken issues an admin-typed bearer token.
func (v *Verifier) IssueAdminToken(adminID int64, email string, ttl time.Duration) (string, error) {
	return v.Issue(Claims{Type: TypeAdmin, AdminID: adminID, Email: email}, ttl)
}

// Verify validates signature and expiry and returns the decoded claims, or
// nil on any failure (malformed token, wrong algorithm, bad signature or
// expiry). Callers treat nil exactly like "no credential supplied"; the
// fail-open path leads to anonymous, never to authorized.
func (v *Verifier) Verify(token string) *Claims {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}
	return claims
}
