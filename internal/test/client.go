package test

import (
	"context"
	"io"

	"github.com/kashieternal/rewardsgate/internal/adapter/loyaltyapi"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// LoyaltyClientStub implements the upstream client with per-test overrides.
// Every call succeeds with an empty result unless its function field is set.
type LoyaltyClientStub struct {
	SendOTPFn           func(context.Context, string) error
	VerifyOTPFn         func(context.Context, string, string) (*loyaltyapi.VerifyResult, error)
	AdminLoginFn        func(context.Context, string, string) (*loyaltyapi.AdminLoginResult, error)
	ProfileFn           func(context.Context, string) (*model.MemberProfile, error)
	UpdateProfileFn     func(context.Context, string, model.ProfileUpdate) error
	TransactionsFn      func(context.Context, string, int, int) (*model.TransactionPage, error)
	OffersFn            func(context.Context, string) ([]model.Offer, error)
	RewardsFn           func(context.Context, string, int) ([]model.Reward, error)
	RedeemFn            func(context.Context, string, string) error
	QRPayloadFn         func(context.Context, string) (string, error)
	AdminDashboardFn    func(context.Context, string) (*model.DashboardAnalytics, error)
	AdminUsersFn        func(context.Context, string, string, int) ([]model.MemberProfile, error)
	AdminTransactionsFn func(context.Context, string, int) ([]model.Transaction, error)
	AdminRewardsFn      func(context.Context, string) ([]model.Reward, error)
	CreateRewardFn      func(context.Context, string, model.NewReward) error
	SetRewardActiveFn   func(context.Context, string, string, bool) error
	CreditPointsFn      func(context.Context, string, string, model.CreditRequest) error
	UploadCSVFn         func(context.Context, string, string, io.Reader) (*model.UploadSummary, error)
}

var _ loyaltyapi.Client = (*LoyaltyClientStub)(nil)

func (s *LoyaltyClientStub) SendOTP(ctx context.Context, phone string) error {
	if s.SendOTPFn != nil {
		return s.SendOTPFn(ctx, phone)
	}
	return nil
}

func (s *LoyaltyClientStub) VerifyOTP(ctx context.Context, phone, code string) (*loyaltyapi.VerifyResult, error) {
	if s.VerifyOTPFn != nil {
		return s.VerifyOTPFn(ctx, phone, code)
	}
	return &loyaltyapi.VerifyResult{
		Token:   "upstream-token",
		Profile: model.MemberProfile{ID: "m-1", Phone: phone, Tier: model.TierEternal},
	}, nil
}

func (s *LoyaltyClientStub) AdminLogin(ctx context.Context, username, password string) (*loyaltyapi.AdminLoginResult, error) {
	if s.AdminLoginFn != nil {
		return s.AdminLoginFn(ctx, username, password)
	}
	return &loyaltyapi.AdminLoginResult{
		Token: "admin-token",
		Admin: model.AdminIdentity{Name: username, Role: "manager"},
	}, nil
}

func (s *LoyaltyClientStub) Profile(ctx context.Context, token string) (*model.MemberProfile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, token)
	}
	return &model.MemberProfile{ID: "m-1", Tier: model.TierEternal}, nil
}

func (s *LoyaltyClientStub) UpdateProfile(ctx context.Context, token string, update model.ProfileUpdate) error {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, token, update)
	}
	return nil
}

func (s *LoyaltyClientStub) Transactions(ctx context.Context, token string, page, limit int) (*model.TransactionPage, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, token, page, limit)
	}
	return &model.TransactionPage{}, nil
}

func (s *LoyaltyClientStub) Offers(ctx context.Context, token string) ([]model.Offer, error) {
	if s.OffersFn != nil {
		return s.OffersFn(ctx, token)
	}
	return nil, nil
}

func (s *LoyaltyClientStub) Rewards(ctx context.Context, token string, limit int) ([]model.Reward, error) {
	if s.RewardsFn != nil {
		return s.RewardsFn(ctx, token, limit)
	}
	return nil, nil
}

func (s *LoyaltyClientStub) Redeem(ctx context.Context, token, rewardID string) error {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, token, rewardID)
	}
	return nil
}

func (s *LoyaltyClientStub) QRPayload(ctx context.Context, token string) (string, error) {
	if s.QRPayloadFn != nil {
		return s.QRPayloadFn(ctx, token)
	}
	return "qr-payload", nil
}

func (s *LoyaltyClientStub) AdminDashboard(ctx context.Context, token string) (*model.DashboardAnalytics, error) {
	if s.AdminDashboardFn != nil {
		return s.AdminDashboardFn(ctx, token)
	}
	return &model.DashboardAnalytics{}, nil
}

func (s *LoyaltyClientStub) AdminUsers(ctx context.Context, token, search string, limit int) ([]model.MemberProfile, error) {
	if s.AdminUsersFn != nil {
		return s.AdminUsersFn(ctx, token, search, limit)
	}
	return nil, nil
}

func (s *LoyaltyClientStub) AdminTransactions(ctx context.Context, token string, limit int) ([]model.Transaction, error) {
	if s.AdminTransactionsFn != nil {
		return s.AdminTransactionsFn(ctx, token, limit)
	}
	return nil, nil
}

func (s *LoyaltyClientStub) AdminRewards(ctx context.Context, token string) ([]model.Reward, error) {
	if s.AdminRewardsFn != nil {
		return s.AdminRewardsFn(ctx, token)
	}
	return nil, nil
}

func (s *LoyaltyClientStub) CreateReward(ctx context.Context, token string, reward model.NewReward) error {
	if s.CreateRewardFn != nil {
		return s.CreateRewardFn(ctx, token, reward)
	}
	return nil
}

func (s *LoyaltyClientStub) SetRewardActive(ctx context.Context, token, rewardID string, active bool) error {
	if s.SetRewardActiveFn != nil {
		return s.SetRewardActiveFn(ctx, token, rewardID, active)
	}
	return nil
}

func (s *LoyaltyClientStub) CreditPoints(ctx context.Context, token, userID string, credit model.CreditRequest) error {
	if s.CreditPointsFn != nil {
		return s.CreditPointsFn(ctx, token, userID, credit)
	}
	return nil
}

func (s *LoyaltyClientStub) UploadCSV(ctx context.Context, token, filename string, file io.Reader) (*model.UploadSummary, error) {
	if s.UploadCSVFn != nil {
		return s.UploadCSVFn(ctx, token, filename, file)
	}
	return &model.UploadSummary{}, nil
}
