package model

import "time"

// MemberProfile is the authenticated member's snapshot as returned by the
// loyalty API. Points and tier are server-owned; the gateway never derives
// a balance locally and refreshes the snapshot after any mutating action.
type MemberProfile struct {
	ID             string
	Phone          string
	Name           string
	Email          string
	DateOfBirth    string
	Points         int64
	LifetimePoints int64
	Tier           Tier
	TierProgress   float64
	NextTier       *NextTier
	VisitCount     int64
	TotalSpent     float64
	MemberSince    time.Time
}

// ProfileUpdate carries the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name        *string
	Email       *string
	DateOfBirth *string
}
