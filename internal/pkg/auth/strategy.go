package auth

import "time"

// Strategy mints and verifies the signed cookie tokens that bind a browser
// to a gateway session. The upstream bearer token is never exposed here.
type Strategy interface {
	IssueToken(sessionID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
