package model

import "time"

// SessionKind distinguishes member and admin identities.
type SessionKind string

const (
	SessionMember SessionKind = "MEMBER"
	SessionAdmin  SessionKind = "ADMIN"
)

// Session binds a gateway session to an opaque upstream token. The token is
// treated as a black box: it is attached to upstream calls and never parsed.
type Session struct {
	ID        string
	Kind      SessionKind
	Token     string
	MemberID  string
	Phone     string
	AdminName string
	AdminRole string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
