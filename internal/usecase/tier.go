package usecase

import "github.com/kashieternal/rewardsgate/internal/domain/model"

// TierProgress derives the display figures for the tier progress bar.
// The percentage is taken as supplied by the loyalty API and only clamped
// to [0, 100]; tier thresholds are server policy and never recomputed here.
// PointsToNext comes from the threshold the server attached, which remains
// present until the server promotes the member, so a value of zero is legal.
func TierProgress(profile *model.MemberProfile) model.TierProgress {
	if profile.NextTier == nil {
		return model.TierProgress{MaxTier: true}
	}

	pointsToNext := profile.NextTier.MinPoints - profile.LifetimePoints
	if pointsToNext < 0 {
		pointsToNext = 0
	}

	return model.TierProgress{
		Percent:      clampPercent(profile.TierProgress),
		PointsToNext: pointsToNext,
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
