package model

import "time"

// Reward is a redeemable catalog entry owned by the loyalty API.
type Reward struct {
	ID             string
	Name           string
	Description    string
	PointsRequired int64
	Category       string
	Property       string
	MinTier        Tier
	Featured       bool
	IsActive       bool
	ValidTill      *time.Time
}

// NewReward carries the fields required to create a catalog entry.
type NewReward struct {
	Name           string
	Description    string
	PointsRequired int64
	Category       string
	Property       string
	MinTier        Tier
}
