package dto

import "github.com/kashieternal/rewardsgate/internal/domain/model"

// TierCountResponse is one bucket of the tier distribution.
type TierCountResponse struct {
	Tier  string `json:"tier"`
	Count int64  `json:"count"`
}

// AnalyticsResponse aggregates the program-wide admin dashboard figures.
type AnalyticsResponse struct {
	TotalUsers          int64               `json:"totalUsers"`
	ActiveThisMonth     int64               `json:"activeThisMonth"`
	TotalPointsIssued   int64               `json:"totalPointsIssued"`
	TotalPointsRedeemed int64               `json:"totalPointsRedeemed"`
	MonthlyPointsEarned int64               `json:"monthlyPointsEarned"`
	RepeatVisitRate     float64             `json:"repeatVisitRate"`
	TierDistribution    []TierCountResponse `json:"tierDistribution"`
}

// NewAnalyticsResponse maps the domain analytics to the wire shape.
func NewAnalyticsResponse(analytics *model.DashboardAnalytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		TotalUsers:          analytics.TotalUsers,
		ActiveThisMonth:     analytics.ActiveThisMonth,
		TotalPointsIssued:   analytics.TotalPointsIssued,
		TotalPointsRedeemed: analytics.TotalPointsRedeemed,
		MonthlyPointsEarned: analytics.MonthlyPointsEarned,
		RepeatVisitRate:     analytics.RepeatVisitRate,
		TierDistribution:    make([]TierCountResponse, 0, len(analytics.TierDistribution)),
	}
	for _, bucket := range analytics.TierDistribution {
		resp.TierDistribution = append(resp.TierDistribution, TierCountResponse{
			Tier:  string(bucket.Tier),
			Count: bucket.Count,
		})
	}
	return resp
}

// CreditPointsRequest is a manual balance adjustment. Negative points deduct.
type CreditPointsRequest struct {
	Points int64  `json:"points"`
	Reason string `json:"reason"`
}

// CreateRewardRequest carries the fields for a new catalog entry.
type CreateRewardRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int64  `json:"pointsRequired"`
	Category       string `json:"category"`
	Property       string `json:"property"`
	MinTier        string `json:"minTier"`
}

// ToggleRewardRequest switches a catalog entry's availability.
type ToggleRewardRequest struct {
	IsActive bool `json:"isActive"`
}

// UploadResponse reports the CSV ingestion outcome.
type UploadResponse struct {
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
}
