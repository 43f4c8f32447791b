package usecase

import (
	"fmt"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// Redeemability tells whether the member can afford a reward and, when not,
// how many points are missing.
type Redeemability struct {
	CanRedeem bool
	Shortfall int64
}

// Message renders the shortfall hint shown next to a disabled redeem action.
func (r Redeemability) Message() string {
	if r.CanRedeem {
		return ""
	}
	return fmt.Sprintf("Need %d more points", r.Shortfall)
}

// CheckRedeemable compares the member's current balance with the reward cost.
// The check gates the redeem call locally; the authoritative validation still
// happens upstream.
func CheckRedeemable(points int64, reward *model.Reward) Redeemability {
	if points >= reward.PointsRequired {
		return Redeemability{CanRedeem: true}
	}
	return Redeemability{Shortfall: reward.PointsRequired - points}
}

// FilterRewards returns rewards matching the requested category, or all
// rewards when the category is "ALL" or empty.
func FilterRewards(rewards []model.Reward, category string) []model.Reward {
	if category == "" || category == "ALL" {
		return rewards
	}
	filtered := make([]model.Reward, 0, len(rewards))
	for _, r := range rewards {
		if r.Category == category {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
