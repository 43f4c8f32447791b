package handlers

import (
	"context"
	"io"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// AuthFacade describes login capabilities required by handlers. The string
// returned from VerifyOTP and AdminLogin is the signed session token written
// into the auth cookie, never the upstream bearer token.
type AuthFacade interface {
	SendOTP(ctx context.Context, phone string) error
	ResendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (string, *model.MemberProfile, error)
	AdminLogin(ctx context.Context, username, password string) (string, *model.AdminIdentity, error)
	ResolveSession(ctx context.Context, token string) (*model.Session, error)
	Logout(ctx context.Context, token string)
}

// MemberFacade encapsulates member operations exposed via HTTP.
type MemberFacade interface {
	Dashboard(ctx context.Context, sessionID string) (*model.MemberDashboard, error)
	Profile(ctx context.Context, sessionID string) (*model.MemberProfile, error)
	UpdateProfile(ctx context.Context, sessionID string, update model.ProfileUpdate) (*model.MemberProfile, error)
	Transactions(ctx context.Context, sessionID string, page, limit int) (*model.TransactionPage, error)
	Offers(ctx context.Context, sessionID string) ([]model.Offer, error)
	Rewards(ctx context.Context, sessionID string, limit int) ([]model.Reward, int64, error)
	Redeem(ctx context.Context, sessionID, rewardID string) (*model.MemberProfile, error)
	QRPayload(ctx context.Context, sessionID string) (string, error)
}

// AdminFacade encapsulates back-office operations exposed via HTTP.
type AdminFacade interface {
	AdminDashboard(ctx context.Context, sessionID string) (*model.DashboardAnalytics, error)
	AdminUsers(ctx context.Context, sessionID, search string, limit int) ([]model.MemberProfile, error)
	AdminTransactions(ctx context.Context, sessionID string, limit int) ([]model.Transaction, error)
	AdminRewards(ctx context.Context, sessionID string) ([]model.Reward, error)
	CreateReward(ctx context.Context, sessionID string, reward model.NewReward) error
	SetRewardActive(ctx context.Context, sessionID, rewardID string, active bool) error
	CreditPoints(ctx context.Context, sessionID, userID string, credit model.CreditRequest) error
	UploadCSV(ctx context.Context, sessionID, filename string, file io.Reader) (*model.UploadSummary, error)
}

// GateFacade aggregates the full set of operations used across handlers.
type GateFacade interface {
	AuthFacade
	MemberFacade
	AdminFacade
}
