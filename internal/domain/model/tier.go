package model

// Tier is a membership rank determined by lifetime points.
type Tier string

const (
	TierEternal  Tier = "ETERNAL"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// Valid reports whether the tier is one of the known ranks.
func (t Tier) Valid() bool {
	switch t {
	case TierEternal, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// NextTier describes the rank above the member's current one together with
// the lifetime points threshold that unlocks it. Absent when the member
// already holds the maximum tier.
type NextTier struct {
	Tier      Tier
	MinPoints int64
}

// TierProgress holds display figures derived for the tier progress bar.
// Percent comes from the server and is only clamped; PointsToNext is
// computed locally from the threshold. The two are not reconciled.
type TierProgress struct {
	Percent      float64
	PointsToNext int64
	MaxTier      bool
}
