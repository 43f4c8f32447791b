package loyaltyapi

import (
	"time"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// Wire payloads mirroring JSON bodies of the loyalty API.

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type verifyOTPResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Admin   struct {
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"admin"`
}

type tierProgressPayload struct {
	Progress float64 `json:"progress"`
}

type nextTierPayload struct {
	Tier      string `json:"tier"`
	MinPoints int64  `json:"minPoints"`
}

type userPayload struct {
	ID             string               `json:"id"`
	Phone          string               `json:"phone"`
	Name           string               `json:"name,omitempty"`
	Email          string               `json:"email,omitempty"`
	DateOfBirth    string               `json:"dateOfBirth,omitempty"`
	Points         int64                `json:"points"`
	LifetimePoints int64                `json:"lifetimePoints"`
	Tier           string               `json:"tier"`
	TierProgress   *tierProgressPayload `json:"tierProgress,omitempty"`
	NextTier       *nextTierPayload     `json:"nextTier,omitempty"`
	VisitCount     int64                `json:"visitCount"`
	TotalSpent     float64              `json:"totalSpent"`
	MemberSince    time.Time            `json:"memberSince"`
}

func (p userPayload) toModel() model.MemberProfile {
	profile := model.MemberProfile{
		ID:             p.ID,
		Phone:          p.Phone,
		Name:           p.Name,
		Email:          p.Email,
		DateOfBirth:    p.DateOfBirth,
		Points:         p.Points,
		LifetimePoints: p.LifetimePoints,
		Tier:           model.Tier(p.Tier),
		VisitCount:     p.VisitCount,
		TotalSpent:     p.TotalSpent,
		MemberSince:    p.MemberSince,
	}
	if p.TierProgress != nil {
		profile.TierProgress = p.TierProgress.Progress
	}
	if p.NextTier != nil {
		profile.NextTier = &model.NextTier{Tier: model.Tier(p.NextTier.Tier), MinPoints: p.NextTier.MinPoints}
	}
	return profile
}

type profileResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
}

type updateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

type transactionPayload struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Points       int64     `json:"points"`
	BalanceAfter int64     `json:"balanceAfter"`
	Property     string    `json:"property"`
	Description  string    `json:"description"`
	AmountSpent  float64   `json:"amountSpent,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p transactionPayload) toModel() model.Transaction {
	return model.Transaction{
		ID:           p.ID,
		Type:         model.TransactionType(p.Type),
		Points:       p.Points,
		BalanceAfter: p.BalanceAfter,
		Property:     p.Property,
		Description:  p.Description,
		AmountSpent:  p.AmountSpent,
		CreatedAt:    p.CreatedAt,
	}
}

type transactionsResponse struct {
	Transactions []transactionPayload `json:"transactions"`
	Pagination   struct {
		Total int64 `json:"total"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
}

type offerPayload struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	TitleHindi  string `json:"titleHindi,omitempty"`
	Description string `json:"description"`
}

type offersResponse struct {
	Offers []offerPayload `json:"offers"`
}

type rewardPayload struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	PointsRequired int64      `json:"pointsRequired"`
	Category       string     `json:"category"`
	Property       string     `json:"property"`
	MinTier        string     `json:"minTier"`
	Featured       bool       `json:"featured,omitempty"`
	IsActive       bool       `json:"isActive"`
	ValidTill      *time.Time `json:"validTill,omitempty"`
}

func (p rewardPayload) toModel() model.Reward {
	return model.Reward{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		PointsRequired: p.PointsRequired,
		Category:       p.Category,
		Property:       p.Property,
		MinTier:        model.Tier(p.MinTier),
		Featured:       p.Featured,
		IsActive:       p.IsActive,
		ValidTill:      p.ValidTill,
	}
}

type rewardsResponse struct {
	Rewards []rewardPayload `json:"rewards"`
}

type redeemRequest struct {
	RewardID string `json:"rewardId"`
}

type qrResponse struct {
	Success bool   `json:"success"`
	Payload string `json:"payload"`
}

type createRewardRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	PointsRequired int64  `json:"pointsRequired"`
	Category       string `json:"category"`
	Property       string `json:"property"`
	MinTier        string `json:"minTier"`
}

type toggleRewardRequest struct {
	IsActive bool `json:"isActive"`
}

type creditRequest struct {
	Points int64  `json:"points"`
	Reason string `json:"reason"`
}

type analyticsResponse struct {
	Analytics struct {
		TotalUsers          int64   `json:"totalUsers"`
		ActiveThisMonth     int64   `json:"activeThisMonth"`
		TotalPointsIssued   int64   `json:"totalPointsIssued"`
		TotalPointsRedeemed int64   `json:"totalPointsRedeemed"`
		MonthlyPointsEarned int64   `json:"monthlyPointsEarned"`
		RepeatVisitRate     float64 `json:"repeatVisitRate"`
		TierDistribution    []struct {
			Tier  string `json:"_id"`
			Count int64  `json:"count"`
		} `json:"tierDistribution"`
	} `json:"analytics"`
}

type adminUsersResponse struct {
	Users []userPayload `json:"users"`
}

type uploadResponse struct {
	Results struct {
		Success int64 `json:"success"`
		Failed  int64 `json:"failed"`
	} `json:"results"`
}
