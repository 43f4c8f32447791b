package model

// MemberDashboard is the landing payload: a fresh profile snapshot plus the
// most recent activity and current offers.
type MemberDashboard struct {
	Profile MemberProfile
	Recent  []Transaction
	Offers  []Offer
}
