package test

import (
	"context"
	"io"
	"time"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	SendOTPFn        func(context.Context, string) error
	ResendOTPFn      func(context.Context, string) error
	VerifyOTPFn      func(context.Context, string, string) (string, *model.MemberProfile, error)
	AdminLoginFn     func(context.Context, string, string) (string, *model.AdminIdentity, error)
	ResolveSessionFn func(context.Context, string) (*model.Session, error)
	LogoutFn         func(context.Context, string)
}

// SendOTP delegates to provided function or succeeds.
func (s AuthFacadeStub) SendOTP(ctx context.Context, phone string) error {
	if s.SendOTPFn != nil {
		return s.SendOTPFn(ctx, phone)
	}
	return nil
}

// ResendOTP delegates to provided function or succeeds.
func (s AuthFacadeStub) ResendOTP(ctx context.Context, phone string) error {
	if s.ResendOTPFn != nil {
		return s.ResendOTPFn(ctx, phone)
	}
	return nil
}

// VerifyOTP delegates to provided function or returns a default session.
func (s AuthFacadeStub) VerifyOTP(ctx context.Context, phone, code string) (string, *model.MemberProfile, error) {
	if s.VerifyOTPFn != nil {
		return s.VerifyOTPFn(ctx, phone, code)
	}
	return "session-token", &model.MemberProfile{ID: "m-1", Phone: phone, Tier: model.TierEternal}, nil
}

// AdminLogin delegates to provided function or returns a default identity.
func (s AuthFacadeStub) AdminLogin(ctx context.Context, username, password string) (string, *model.AdminIdentity, error) {
	if s.AdminLoginFn != nil {
		return s.AdminLoginFn(ctx, username, password)
	}
	return "session-token", &model.AdminIdentity{Name: username, Role: "manager"}, nil
}

// ResolveSession delegates to provided function or resolves a member session.
func (s AuthFacadeStub) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	if s.ResolveSessionFn != nil {
		return s.ResolveSessionFn(ctx, token)
	}
	return &model.Session{ID: "sess-1", Kind: model.SessionMember, MemberID: "m-1"}, nil
}

// Logout delegates to provided function or does nothing.
func (s AuthFacadeStub) Logout(ctx context.Context, token string) {
	if s.LogoutFn != nil {
		s.LogoutFn(ctx, token)
	}
}

// MemberFacadeStub provides controllable behaviour for member endpoints.
type MemberFacadeStub struct {
	DashboardFn     func(context.Context, string) (*model.MemberDashboard, error)
	ProfileFn       func(context.Context, string) (*model.MemberProfile, error)
	UpdateProfileFn func(context.Context, string, model.ProfileUpdate) (*model.MemberProfile, error)
	TransactionsFn  func(context.Context, string, int, int) (*model.TransactionPage, error)
	OffersFn        func(context.Context, string) ([]model.Offer, error)
	RewardsFn       func(context.Context, string, int) ([]model.Reward, int64, error)
	RedeemFn        func(context.Context, string, string) (*model.MemberProfile, error)
	QRPayloadFn     func(context.Context, string) (string, error)
}

// Dashboard delegates to provided function or returns a default payload.
func (s MemberFacadeStub) Dashboard(ctx context.Context, sessionID string) (*model.MemberDashboard, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, sessionID)
	}
	return &model.MemberDashboard{Profile: model.MemberProfile{ID: "m-1", Tier: model.TierEternal}}, nil
}

// Profile delegates to provided function or returns a default member.
func (s MemberFacadeStub) Profile(ctx context.Context, sessionID string) (*model.MemberProfile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, sessionID)
	}
	return &model.MemberProfile{ID: "m-1", Tier: model.TierEternal}, nil
}

// UpdateProfile delegates to provided function or echoes the update.
func (s MemberFacadeStub) UpdateProfile(ctx context.Context, sessionID string, update model.ProfileUpdate) (*model.MemberProfile, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, sessionID, update)
	}
	profile := model.MemberProfile{ID: "m-1", Tier: model.TierEternal}
	if update.Name != nil {
		profile.Name = *update.Name
	}
	return &profile, nil
}

// Transactions delegates to provided function or returns an empty page.
func (s MemberFacadeStub) Transactions(ctx context.Context, sessionID string, page, limit int) (*model.TransactionPage, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, sessionID, page, limit)
	}
	return &model.TransactionPage{}, nil
}

// Offers delegates to provided function or returns no offers.
func (s MemberFacadeStub) Offers(ctx context.Context, sessionID string) ([]model.Offer, error) {
	if s.OffersFn != nil {
		return s.OffersFn(ctx, sessionID)
	}
	return nil, nil
}

// Rewards delegates to provided function or returns one redeemable reward.
func (s MemberFacadeStub) Rewards(ctx context.Context, sessionID string, limit int) ([]model.Reward, int64, error) {
	if s.RewardsFn != nil {
		return s.RewardsFn(ctx, sessionID, limit)
	}
	return []model.Reward{{ID: "r-1", Name: "Spa Day", PointsRequired: 100, IsActive: true}}, 150, nil
}

// Redeem delegates to provided function or returns the refreshed member.
func (s MemberFacadeStub) Redeem(ctx context.Context, sessionID, rewardID string) (*model.MemberProfile, error) {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, sessionID, rewardID)
	}
	return &model.MemberProfile{ID: "m-1", Points: 50, Tier: model.TierEternal}, nil
}

// QRPayload delegates to provided function or returns a fixed payload.
func (s MemberFacadeStub) QRPayload(ctx context.Context, sessionID string) (string, error) {
	if s.QRPayloadFn != nil {
		return s.QRPayloadFn(ctx, sessionID)
	}
	return "qr-payload", nil
}

// AdminFacadeStub provides controllable behaviour for back-office endpoints.
type AdminFacadeStub struct {
	AdminDashboardFn    func(context.Context, string) (*model.DashboardAnalytics, error)
	AdminUsersFn        func(context.Context, string, string, int) ([]model.MemberProfile, error)
	AdminTransactionsFn func(context.Context, string, int) ([]model.Transaction, error)
	AdminRewardsFn      func(context.Context, string) ([]model.Reward, error)
	CreateRewardFn      func(context.Context, string, model.NewReward) error
	SetRewardActiveFn   func(context.Context, string, string, bool) error
	CreditPointsFn      func(context.Context, string, string, model.CreditRequest) error
	UploadCSVFn         func(context.Context, string, string, io.Reader) (*model.UploadSummary, error)
}

// AdminDashboard delegates to provided function or returns empty analytics.
func (s AdminFacadeStub) AdminDashboard(ctx context.Context, sessionID string) (*model.DashboardAnalytics, error) {
	if s.AdminDashboardFn != nil {
		return s.AdminDashboardFn(ctx, sessionID)
	}
	return &model.DashboardAnalytics{}, nil
}

// AdminUsers delegates to provided function or returns one member.
func (s AdminFacadeStub) AdminUsers(ctx context.Context, sessionID, search string, limit int) ([]model.MemberProfile, error) {
	if s.AdminUsersFn != nil {
		return s.AdminUsersFn(ctx, sessionID, search, limit)
	}
	return []model.MemberProfile{{ID: "m-1", Tier: model.TierEternal}}, nil
}

// AdminTransactions delegates to provided function or returns one entry.
func (s AdminFacadeStub) AdminTransactions(ctx context.Context, sessionID string, limit int) ([]model.Transaction, error) {
	if s.AdminTransactionsFn != nil {
		return s.AdminTransactionsFn(ctx, sessionID, limit)
	}
	return []model.Transaction{{ID: "t-1", Type: "EARN", Points: 10, CreatedAt: time.Unix(0, 0)}}, nil
}

// AdminRewards delegates to provided function or returns one reward.
func (s AdminFacadeStub) AdminRewards(ctx context.Context, sessionID string) ([]model.Reward, error) {
	if s.AdminRewardsFn != nil {
		return s.AdminRewardsFn(ctx, sessionID)
	}
	return []model.Reward{{ID: "r-1", Name: "Spa Day", PointsRequired: 100}}, nil
}

// CreateReward delegates to provided function or succeeds.
func (s AdminFacadeStub) CreateReward(ctx context.Context, sessionID string, reward model.NewReward) error {
	if s.CreateRewardFn != nil {
		return s.CreateRewardFn(ctx, sessionID, reward)
	}
	return nil
}

// SetRewardActive delegates to provided function or succeeds.
func (s AdminFacadeStub) SetRewardActive(ctx context.Context, sessionID, rewardID string, active bool) error {
	if s.SetRewardActiveFn != nil {
		return s.SetRewardActiveFn(ctx, sessionID, rewardID, active)
	}
	return nil
}

// CreditPoints delegates to provided function or succeeds.
func (s AdminFacadeStub) CreditPoints(ctx context.Context, sessionID, userID string, credit model.CreditRequest) error {
	if s.CreditPointsFn != nil {
		return s.CreditPointsFn(ctx, sessionID, userID, credit)
	}
	return nil
}

// UploadCSV delegates to provided function or reports a clean import.
func (s AdminFacadeStub) UploadCSV(ctx context.Context, sessionID, filename string, file io.Reader) (*model.UploadSummary, error) {
	if s.UploadCSVFn != nil {
		return s.UploadCSVFn(ctx, sessionID, filename, file)
	}
	return &model.UploadSummary{Success: 1}, nil
}

// GateFacadeStub aggregates the three facade stubs for router-level tests.
type GateFacadeStub struct {
	AuthFacadeStub
	MemberFacadeStub
	AdminFacadeStub
}
