package dto

import (
	"time"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/usecase"
)

// TierProgressResponse carries the display figures for the progress bar.
// Percent and PointsToNext are omitted for members on the highest tier.
type TierProgressResponse struct {
	Percent      *float64 `json:"percent,omitempty"`
	PointsToNext *int64   `json:"pointsToNext,omitempty"`
	NextTier     string   `json:"nextTier,omitempty"`
	MaxTier      bool     `json:"maxTier"`
}

// ProfileResponse is the member snapshot together with derived tier figures.
type ProfileResponse struct {
	ID             string               `json:"id"`
	Phone          string               `json:"phone"`
	Name           string               `json:"name"`
	Email          string               `json:"email,omitempty"`
	DateOfBirth    string               `json:"dateOfBirth,omitempty"`
	Points         int64                `json:"points"`
	LifetimePoints int64                `json:"lifetimePoints"`
	Tier           string               `json:"tier"`
	TierProgress   TierProgressResponse `json:"tierProgress"`
	VisitCount     int64                `json:"visitCount"`
	TotalSpent     float64              `json:"totalSpent"`
	MemberSince    time.Time            `json:"memberSince"`
}

// NewProfileResponse derives the wire profile from the domain snapshot.
func NewProfileResponse(profile *model.MemberProfile) ProfileResponse {
	progress := usecase.TierProgress(profile)
	resp := ProfileResponse{
		ID:             profile.ID,
		Phone:          profile.Phone,
		Name:           profile.Name,
		Email:          profile.Email,
		DateOfBirth:    profile.DateOfBirth,
		Points:         profile.Points,
		LifetimePoints: profile.LifetimePoints,
		Tier:           string(profile.Tier),
		VisitCount:     profile.VisitCount,
		TotalSpent:     profile.TotalSpent,
		MemberSince:    profile.MemberSince,
		TierProgress:   TierProgressResponse{MaxTier: progress.MaxTier},
	}
	if !progress.MaxTier {
		percent := progress.Percent
		pointsToNext := progress.PointsToNext
		resp.TierProgress.Percent = &percent
		resp.TierProgress.PointsToNext = &pointsToNext
		if profile.NextTier != nil {
			resp.TierProgress.NextTier = string(profile.NextTier.Tier)
		}
	}
	return resp
}

// UpdateProfileRequest carries the editable profile fields. Absent fields stay
// unchanged.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

// TransactionResponse is one points movement.
type TransactionResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Points       int64     `json:"points"`
	BalanceAfter int64     `json:"balanceAfter"`
	Property     string    `json:"property,omitempty"`
	Description  string    `json:"description,omitempty"`
	AmountSpent  float64   `json:"amountSpent,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewTransactionResponse maps a domain transaction to its wire shape.
func NewTransactionResponse(tx model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		Type:         string(tx.Type),
		Points:       tx.Points,
		BalanceAfter: tx.BalanceAfter,
		Property:     tx.Property,
		Description:  tx.Description,
		AmountSpent:  tx.AmountSpent,
		CreatedAt:    tx.CreatedAt,
	}
}

// TransactionGroupResponse is one calendar day of history.
type TransactionGroupResponse struct {
	Date         string                `json:"date"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionsResponse is a page of history grouped by day.
type TransactionsResponse struct {
	Groups []TransactionGroupResponse `json:"groups"`
	Total  int64                      `json:"total"`
	Pages  int64                      `json:"pages"`
}

// NewTransactionsResponse groups the page by calendar day, newest first.
func NewTransactionsResponse(page *model.TransactionPage) TransactionsResponse {
	resp := TransactionsResponse{
		Groups: make([]TransactionGroupResponse, 0),
		Total:  page.Total,
		Pages:  page.Pages,
	}
	for _, group := range usecase.GroupByDate(page.Transactions) {
		out := TransactionGroupResponse{Date: group.Date}
		for _, tx := range group.Transactions {
			out.Transactions = append(out.Transactions, NewTransactionResponse(tx))
		}
		resp.Groups = append(resp.Groups, out)
	}
	return resp
}

// OfferResponse is one personalized offer card.
type OfferResponse struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	TitleHindi  string `json:"titleHindi,omitempty"`
	Description string `json:"description"`
}

// DashboardResponse is the landing payload.
type DashboardResponse struct {
	Profile ProfileResponse       `json:"profile"`
	Recent  []TransactionResponse `json:"recentTransactions"`
	Offers  []OfferResponse       `json:"offers"`
}

// NewDashboardResponse assembles the landing payload.
func NewDashboardResponse(dashboard *model.MemberDashboard) DashboardResponse {
	resp := DashboardResponse{
		Profile: NewProfileResponse(&dashboard.Profile),
		Recent:  make([]TransactionResponse, 0, len(dashboard.Recent)),
		Offers:  make([]OfferResponse, 0, len(dashboard.Offers)),
	}
	for _, tx := range dashboard.Recent {
		resp.Recent = append(resp.Recent, NewTransactionResponse(tx))
	}
	for _, offer := range dashboard.Offers {
		resp.Offers = append(resp.Offers, OfferResponse{
			Icon:        offer.Icon,
			Title:       offer.Title,
			TitleHindi:  offer.TitleHindi,
			Description: offer.Description,
		})
	}
	return resp
}

// RewardResponse is one catalog entry with its redeemability for the member.
type RewardResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	PointsRequired int64      `json:"pointsRequired"`
	Category       string     `json:"category"`
	Property       string     `json:"property,omitempty"`
	MinTier        string     `json:"minTier,omitempty"`
	Featured       bool       `json:"featured"`
	IsActive       bool       `json:"isActive"`
	ValidTill      *time.Time `json:"validTill,omitempty"`
	CanRedeem      bool       `json:"canRedeem"`
	Message        string     `json:"message,omitempty"`
}

// NewRewardResponse maps a reward and gates it against the member's balance.
func NewRewardResponse(reward model.Reward, points int64) RewardResponse {
	redeemability := usecase.CheckRedeemable(points, &reward)
	return RewardResponse{
		ID:             reward.ID,
		Name:           reward.Name,
		Description:    reward.Description,
		PointsRequired: reward.PointsRequired,
		Category:       reward.Category,
		Property:       reward.Property,
		MinTier:        string(reward.MinTier),
		Featured:       reward.Featured,
		IsActive:       reward.IsActive,
		ValidTill:      reward.ValidTill,
		CanRedeem:      redeemability.CanRedeem,
		Message:        redeemability.Message(),
	}
}

// RewardsResponse is the catalog view for the member.
type RewardsResponse struct {
	Rewards []RewardResponse `json:"rewards"`
	Points  int64            `json:"points"`
}

// RedeemRequest identifies the reward to redeem.
type RedeemRequest struct {
	RewardID string `json:"rewardId"`
}

// QRResponse carries the opaque payload rendered as the member's QR code.
type QRResponse struct {
	Payload string `json:"qrData"`
}
