// Package auth holds the token pair handed out by the login and
// renewToken mutations.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// Session is the bearer token pair for authenticated requests. A new
// session replaces the previous one wholesale on login or renewal,
// which also discards any resolved site reference.
type Session struct {
	AuthToken    string
	RefreshToken string

	siteReference string
}

func NewSession(authToken, refreshToken string) *Session {
	return &Session{AuthToken: authToken, RefreshToken: refreshToken}
}

// Valid reports whether the auth token's expiry claim lies after now.
// A token that cannot be decoded, or that carries no expiry, counts as
// invalid rather than raising.
func (s *Session) Valid(now time.Time) bool {
	exp, ok := tokenExpiry(s.AuthToken)
	if !ok {
		return false
	}
	return now.Before(exp)
}

// SiteReference returns the memoized delivery-site reference, if it has
// been resolved for this session.
func (s *Session) SiteReference() (string, bool) {
	return s.siteReference, s.siteReference != ""
}

// SetSiteReference memoizes the delivery-site reference. It is resolved
// at most once per session.
func (s *Session) SetSiteReference(ref string) {
	s.siteReference = ref
}

// tokenExpiry pulls the exp claim out of a JWT without verifying the
// signature. Expiry awareness is all that is needed here; the backend
// does the actual verification.
func tokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}

	return time.Unix(claims.Exp, 0), true
}
