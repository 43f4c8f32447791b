package app

import (
	"context"
	"io"
	"time"

	"github.com/kashieternal/rewardsgate/internal/adapter/loyaltyapi"
	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/login"
	"github.com/kashieternal/rewardsgate/internal/pkg/auth"
	"github.com/kashieternal/rewardsgate/internal/session"
	"github.com/kashieternal/rewardsgate/internal/usecase"
)

const dashboardRecentLimit = 5

// OTPAuthenticator adapts the loyalty API client to the login flow contract.
type OTPAuthenticator struct {
	client loyaltyapi.Client
}

// NewOTPAuthenticator wraps the client for flow construction.
func NewOTPAuthenticator(client loyaltyapi.Client) *OTPAuthenticator {
	return &OTPAuthenticator{client: client}
}

func (a *OTPAuthenticator) SendOTP(ctx context.Context, phone string) error {
	return a.client.SendOTP(ctx, phone)
}

func (a *OTPAuthenticator) VerifyOTP(ctx context.Context, phone, code string) (string, *model.MemberProfile, error) {
	result, err := a.client.VerifyOTP(ctx, phone, code)
	if err != nil {
		return "", nil, err
	}
	return result.Token, &result.Profile, nil
}

// GateFacade aggregates login flows, the session store, and the upstream
// client behind the HTTP and worker surfaces.
type GateFacade struct {
	registry *login.Registry
	store    *session.Store
	client   loyaltyapi.Client
	strategy auth.Strategy
}

// NewGateFacade creates the facade over its collaborators.
func NewGateFacade(registry *login.Registry, store *session.Store, client loyaltyapi.Client, strategy auth.Strategy) *GateFacade {
	return &GateFacade{registry: registry, store: store, client: client, strategy: strategy}
}

// --- authentication ---

// SendOTP starts or reuses the login attempt for the phone.
func (f *GateFacade) SendOTP(ctx context.Context, phone string) error {
	return f.registry.GetOrCreate(phone).SubmitPhone(ctx, phone)
}

// ResendOTP re-issues the OTP for an attempt already past phone entry.
func (f *GateFacade) ResendOTP(ctx context.Context, phone string) error {
	flow, ok := f.registry.Get(phone)
	if !ok {
		return domainErrors.ErrFlowState
	}
	return flow.Resend(ctx)
}

// VerifyOTP completes the login attempt. On success the attempt is discarded,
// a durable session is created, and the signed cookie token is returned.
func (f *GateFacade) VerifyOTP(ctx context.Context, phone, code string) (string, *model.MemberProfile, error) {
	flow, ok := f.registry.Get(phone)
	if !ok {
		return "", nil, domainErrors.ErrFlowState
	}

	result, err := flow.Verify(ctx, code)
	if err != nil {
		return "", nil, err
	}
	f.registry.Remove(phone)

	sess, err := f.store.LoginMember(ctx, result.Token, *result.Profile)
	if err != nil {
		return "", nil, err
	}
	token, err := f.strategy.IssueToken(sess.ID)
	if err != nil {
		return "", nil, err
	}
	return token, result.Profile, nil
}

// AdminLogin authenticates a back-office operator and opens an admin session.
func (f *GateFacade) AdminLogin(ctx context.Context, username, password string) (string, *model.AdminIdentity, error) {
	result, err := f.client.AdminLogin(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	sess, err := f.store.LoginAdmin(ctx, result.Token, result.Admin)
	if err != nil {
		return "", nil, err
	}
	token, err := f.strategy.IssueToken(sess.ID)
	if err != nil {
		return "", nil, err
	}
	admin := result.Admin
	return token, &admin, nil
}

// ResolveSession exchanges a signed cookie token for the live session.
func (f *GateFacade) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	id, err := f.strategy.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return f.store.Resolve(ctx, id)
}

// Logout clears the session behind the token. Unparseable tokens are ignored;
// logout always succeeds.
func (f *GateFacade) Logout(ctx context.Context, token string) {
	id, err := f.strategy.ParseToken(token)
	if err != nil {
		return
	}
	f.store.Logout(ctx, id)
}

// --- member surface ---

// Dashboard re-fetches the profile and collects recent activity and offers.
func (f *GateFacade) Dashboard(ctx context.Context, sessionID string) (*model.MemberDashboard, error) {
	profile, err := f.store.FetchProfile(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	dashboard := &model.MemberDashboard{Profile: *profile}
	err = f.store.Authenticated(ctx, sessionID, func(token string) error {
		page, err := f.client.Transactions(ctx, token, 1, dashboardRecentLimit)
		if err != nil {
			return err
		}
		dashboard.Recent = page.Transactions

		offers, err := f.client.Offers(ctx, token)
		if err != nil {
			return err
		}
		dashboard.Offers = offers
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

// Profile serves the cached member snapshot.
func (f *GateFacade) Profile(ctx context.Context, sessionID string) (*model.MemberProfile, error) {
	return f.store.Profile(ctx, sessionID)
}

// UpdateProfile pushes the edit upstream and merges it locally.
func (f *GateFacade) UpdateProfile(ctx context.Context, sessionID string, update model.ProfileUpdate) (*model.MemberProfile, error) {
	return f.store.UpdateUser(ctx, sessionID, update)
}

// Transactions proxies one page of the member's history.
func (f *GateFacade) Transactions(ctx context.Context, sessionID string, page, limit int) (*model.TransactionPage, error) {
	var result *model.TransactionPage
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		result, err = f.client.Transactions(ctx, token, page, limit)
		return err
	})
	return result, err
}

// Offers proxies the member's personalized offers.
func (f *GateFacade) Offers(ctx context.Context, sessionID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		offers, err = f.client.Offers(ctx, token)
		return err
	})
	return offers, err
}

// Rewards proxies the catalog together with the member's current balance.
func (f *GateFacade) Rewards(ctx context.Context, sessionID string, limit int) ([]model.Reward, int64, error) {
	profile, err := f.store.Profile(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	var rewards []model.Reward
	err = f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		rewards, err = f.client.Rewards(ctx, token, limit)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return rewards, profile.Points, nil
}

// Redeem gates the redemption against the cached balance before issuing
// exactly one upstream redeem call, then re-fetches the profile so the new
// balance comes from the server.
func (f *GateFacade) Redeem(ctx context.Context, sessionID, rewardID string) (*model.MemberProfile, error) {
	profile, err := f.store.Profile(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var reward *model.Reward
	err = f.store.Authenticated(ctx, sessionID, func(token string) error {
		rewards, err := f.client.Rewards(ctx, token, 0)
		if err != nil {
			return err
		}
		for i := range rewards {
			if rewards[i].ID == rewardID {
				reward = &rewards[i]
				return nil
			}
		}
		return domainErrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	redeemability := usecase.CheckRedeemable(profile.Points, reward)
	if !redeemability.CanRedeem {
		return nil, &domainErrors.InsufficientPointsError{Shortfall: redeemability.Shortfall}
	}

	err = f.store.Authenticated(ctx, sessionID, func(token string) error {
		return f.client.Redeem(ctx, token, rewardID)
	})
	if err != nil {
		return nil, err
	}
	return f.store.FetchProfile(ctx, sessionID)
}

// QRPayload proxies the member's identity QR payload.
func (f *GateFacade) QRPayload(ctx context.Context, sessionID string) (string, error) {
	var payload string
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		payload, err = f.client.QRPayload(ctx, token)
		return err
	})
	return payload, err
}

// --- admin surface ---

func (f *GateFacade) AdminDashboard(ctx context.Context, sessionID string) (*model.DashboardAnalytics, error) {
	var analytics *model.DashboardAnalytics
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		analytics, err = f.client.AdminDashboard(ctx, token)
		return err
	})
	return analytics, err
}

func (f *GateFacade) AdminUsers(ctx context.Context, sessionID, search string, limit int) ([]model.MemberProfile, error) {
	var users []model.MemberProfile
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		users, err = f.client.AdminUsers(ctx, token, search, limit)
		return err
	})
	return users, err
}

func (f *GateFacade) AdminTransactions(ctx context.Context, sessionID string, limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		transactions, err = f.client.AdminTransactions(ctx, token, limit)
		return err
	})
	return transactions, err
}

func (f *GateFacade) AdminRewards(ctx context.Context, sessionID string) ([]model.Reward, error) {
	var rewards []model.Reward
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		rewards, err = f.client.AdminRewards(ctx, token)
		return err
	})
	return rewards, err
}

func (f *GateFacade) CreateReward(ctx context.Context, sessionID string, reward model.NewReward) error {
	return f.store.Authenticated(ctx, sessionID, func(token string) error {
		return f.client.CreateReward(ctx, token, reward)
	})
}

func (f *GateFacade) SetRewardActive(ctx context.Context, sessionID, rewardID string, active bool) error {
	return f.store.Authenticated(ctx, sessionID, func(token string) error {
		return f.client.SetRewardActive(ctx, token, rewardID, active)
	})
}

func (f *GateFacade) CreditPoints(ctx context.Context, sessionID, userID string, credit model.CreditRequest) error {
	return f.store.Authenticated(ctx, sessionID, func(token string) error {
		return f.client.CreditPoints(ctx, token, userID, credit)
	})
}

func (f *GateFacade) UploadCSV(ctx context.Context, sessionID, filename string, file io.Reader) (*model.UploadSummary, error) {
	var summary *model.UploadSummary
	err := f.store.Authenticated(ctx, sessionID, func(token string) error {
		var err error
		summary, err = f.client.UploadCSV(ctx, token, filename, file)
		return err
	})
	return summary, err
}

// --- sweeper surface ---

// ExpiredSessions selects durable sessions past their expiry.
func (f *GateFacade) ExpiredSessions(ctx context.Context, now time.Time, limit int) ([]string, error) {
	return f.store.ExpiredBefore(ctx, now, limit)
}

// RemoveSession deletes one expired session.
func (f *GateFacade) RemoveSession(ctx context.Context, id string) error {
	return f.store.Remove(ctx, id)
}

// SweepLoginAttempts discards stale in-memory login attempts.
func (f *GateFacade) SweepLoginAttempts(maxAge time.Duration) int {
	return f.registry.Sweep(maxAge)
}
