package loyaltyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

// VerifyResult is the outcome of a successful OTP verification.
type VerifyResult struct {
	Token   string
	Profile model.MemberProfile
}

// AdminLoginResult is the outcome of a successful admin login.
type AdminLoginResult struct {
	Token string
	Admin model.AdminIdentity
}

// Client exposes the loyalty API operations consumed by the gateway.
// All business logic (OTP issuance, accrual, tier thresholds, redemption
// validation, CSV ingestion) lives behind these calls.
type Client interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error)
	AdminLogin(ctx context.Context, username, password string) (*AdminLoginResult, error)

	Profile(ctx context.Context, token string) (*model.MemberProfile, error)
	UpdateProfile(ctx context.Context, token string, update model.ProfileUpdate) error
	Transactions(ctx context.Context, token string, page, limit int) (*model.TransactionPage, error)
	Offers(ctx context.Context, token string) ([]model.Offer, error)
	Rewards(ctx context.Context, token string, limit int) ([]model.Reward, error)
	Redeem(ctx context.Context, token, rewardID string) error
	QRPayload(ctx context.Context, token string) (string, error)

	AdminDashboard(ctx context.Context, token string) (*model.DashboardAnalytics, error)
	AdminUsers(ctx context.Context, token, search string, limit int) ([]model.MemberProfile, error)
	AdminTransactions(ctx context.Context, token string, limit int) ([]model.Transaction, error)
	AdminRewards(ctx context.Context, token string) ([]model.Reward, error)
	CreateReward(ctx context.Context, token string, reward model.NewReward) error
	SetRewardActive(ctx context.Context, token, rewardID string, active bool) error
	CreditPoints(ctx context.Context, token, userID string, credit model.CreditRequest) error
	UploadCSV(ctx context.Context, token, filename string, file io.Reader) (*model.UploadSummary, error)
}

// HTTPClient implements Client against the loyalty REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the API client with a default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse loyalty api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("loyalty api url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (c *HTTPClient) endpoint(p string, query url.Values) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do executes the request and decodes the response into out (when non-nil).
// A 401 maps to ErrUnauthorized; any other non-2xx becomes an UpstreamError
// carrying the server-provided message. Nothing is retried.
func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return domainErrors.ErrUnauthorized
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var msg messageResponse
		_ = json.Unmarshal(body, &msg)
		c.logger.Error("loyalty api request failed",
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", msg.Message),
		)
		return &domainErrors.UpstreamError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode loyalty api response: %w", err)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, token, p string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(p, query), nil)
	if err != nil {
		return err
	}
	setBearer(req, token)
	return c.do(req, out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, token, p string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(p, nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	setBearer(req, token)
	return c.do(req, out)
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// SendOTP asks the loyalty service to deliver an OTP to the phone.
func (c *HTTPClient) SendOTP(ctx context.Context, phone string) error {
	return c.sendJSON(ctx, http.MethodPost, "", "/auth/send-otp", sendOTPRequest{Phone: phone}, nil)
}

// VerifyOTP exchanges phone+code for an upstream token and profile snapshot.
func (c *HTTPClient) VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error) {
	var resp verifyOTPResponse
	if err := c.sendJSON(ctx, http.MethodPost, "", "/auth/verify-otp", verifyOTPRequest{Phone: phone, OTP: code}, &resp); err != nil {
		return nil, err
	}
	return &VerifyResult{Token: resp.Token, Profile: resp.User.toModel()}, nil
}

// AdminLogin authenticates a back-office operator.
func (c *HTTPClient) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResult, error) {
	var resp adminLoginResponse
	if err := c.sendJSON(ctx, http.MethodPost, "", "/auth/admin-login", adminLoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &AdminLoginResult{
		Token: resp.Token,
		Admin: model.AdminIdentity{Name: resp.Admin.Name, Role: resp.Admin.Role},
	}, nil
}

// Profile fetches the current member snapshot.
func (c *HTTPClient) Profile(ctx context.Context, token string) (*model.MemberProfile, error) {
	var resp profileResponse
	if err := c.getJSON(ctx, token, "/user/profile", nil, &resp); err != nil {
		return nil, err
	}
	profile := resp.User.toModel()
	return &profile, nil
}

// UpdateProfile saves the editable profile fields.
func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, update model.ProfileUpdate) error {
	payload := updateProfileRequest{Name: update.Name, Email: update.Email, DateOfBirth: update.DateOfBirth}
	return c.sendJSON(ctx, http.MethodPut, token, "/user/profile", payload, nil)
}

// Transactions fetches one page of the member's history.
func (c *HTTPClient) Transactions(ctx context.Context, token string, page, limit int) (*model.TransactionPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp transactionsResponse
	if err := c.getJSON(ctx, token, "/user/transactions", query, &resp); err != nil {
		return nil, err
	}
	result := &model.TransactionPage{
		Transactions: make([]model.Transaction, 0, len(resp.Transactions)),
		Total:        resp.Pagination.Total,
		Pages:        resp.Pagination.Pages,
	}
	for _, tx := range resp.Transactions {
		result.Transactions = append(result.Transactions, tx.toModel())
	}
	return result, nil
}

// Offers fetches the member's personalized offers.
func (c *HTTPClient) Offers(ctx context.Context, token string) ([]model.Offer, error) {
	var resp offersResponse
	if err := c.getJSON(ctx, token, "/user/offers", nil, &resp); err != nil {
		return nil, err
	}
	offers := make([]model.Offer, 0, len(resp.Offers))
	for _, o := range resp.Offers {
		offers = append(offers, model.Offer{Icon: o.Icon, Title: o.Title, TitleHindi: o.TitleHindi, Description: o.Description})
	}
	return offers, nil
}

// Rewards fetches the redeemable catalog.
func (c *HTTPClient) Rewards(ctx context.Context, token string, limit int) ([]model.Reward, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp rewardsResponse
	if err := c.getJSON(ctx, token, "/rewards", query, &resp); err != nil {
		return nil, err
	}
	return rewardsToModel(resp.Rewards), nil
}

// Redeem exchanges points for a reward. Validation happens upstream.
func (c *HTTPClient) Redeem(ctx context.Context, token, rewardID string) error {
	return c.sendJSON(ctx, http.MethodPost, token, "/transaction/redeem", redeemRequest{RewardID: rewardID}, nil)
}

// QRPayload fetches the opaque payload for the member's identity QR code.
func (c *HTTPClient) QRPayload(ctx context.Context, token string) (string, error) {
	var resp qrResponse
	if err := c.getJSON(ctx, token, "/qr/generate", nil, &resp); err != nil {
		return "", err
	}
	return resp.Payload, nil
}

// AdminDashboard fetches program-wide analytics.
func (c *HTTPClient) AdminDashboard(ctx context.Context, token string) (*model.DashboardAnalytics, error) {
	var resp analyticsResponse
	if err := c.getJSON(ctx, token, "/admin/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	analytics := &model.DashboardAnalytics{
		TotalUsers:          resp.Analytics.TotalUsers,
		ActiveThisMonth:     resp.Analytics.ActiveThisMonth,
		TotalPointsIssued:   resp.Analytics.TotalPointsIssued,
		TotalPointsRedeemed: resp.Analytics.TotalPointsRedeemed,
		MonthlyPointsEarned: resp.Analytics.MonthlyPointsEarned,
		RepeatVisitRate:     resp.Analytics.RepeatVisitRate,
	}
	for _, bucket := range resp.Analytics.TierDistribution {
		analytics.TierDistribution = append(analytics.TierDistribution, model.TierCount{
			Tier:  model.Tier(bucket.Tier),
			Count: bucket.Count,
		})
	}
	return analytics, nil
}

// AdminUsers searches members by name or phone.
func (c *HTTPClient) AdminUsers(ctx context.Context, token, search string, limit int) ([]model.MemberProfile, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp adminUsersResponse
	if err := c.getJSON(ctx, token, "/admin/users", query, &resp); err != nil {
		return nil, err
	}
	users := make([]model.MemberProfile, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, u.toModel())
	}
	return users, nil
}

// AdminTransactions fetches the most recent transactions program-wide.
func (c *HTTPClient) AdminTransactions(ctx context.Context, token string, limit int) ([]model.Transaction, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp transactionsResponse
	if err := c.getJSON(ctx, token, "/admin/transactions", query, &resp); err != nil {
		return nil, err
	}
	transactions := make([]model.Transaction, 0, len(resp.Transactions))
	for _, tx := range resp.Transactions {
		transactions = append(transactions, tx.toModel())
	}
	return transactions, nil
}

// AdminRewards fetches the full catalog including inactive entries.
func (c *HTTPClient) AdminRewards(ctx context.Context, token string) ([]model.Reward, error) {
	var resp rewardsResponse
	if err := c.getJSON(ctx, token, "/admin/rewards", nil, &resp); err != nil {
		return nil, err
	}
	return rewardsToModel(resp.Rewards), nil
}

// CreateReward adds a catalog entry.
func (c *HTTPClient) CreateReward(ctx context.Context, token string, reward model.NewReward) error {
	payload := createRewardRequest{
		Name:           reward.Name,
		Description:    reward.Description,
		PointsRequired: reward.PointsRequired,
		Category:       reward.Category,
		Property:       reward.Property,
		MinTier:        string(reward.MinTier),
	}
	return c.sendJSON(ctx, http.MethodPost, token, "/admin/rewards", payload, nil)
}

// SetRewardActive toggles catalog entry availability.
func (c *HTTPClient) SetRewardActive(ctx context.Context, token, rewardID string, active bool) error {
	return c.sendJSON(ctx, http.MethodPut, token, path.Join("/admin/rewards", rewardID), toggleRewardRequest{IsActive: active}, nil)
}

// CreditPoints applies a manual adjustment to a member's balance.
func (c *HTTPClient) CreditPoints(ctx context.Context, token, userID string, credit model.CreditRequest) error {
	payload := creditRequest{Points: credit.Points, Reason: credit.Reason}
	return c.sendJSON(ctx, http.MethodPost, token, path.Join("/admin/users", userID, "credit"), payload, nil)
}

// UploadCSV streams a bulk transaction file to the ingestion endpoint.
func (c *HTTPClient) UploadCSV(ctx context.Context, token, filename string, file io.Reader) (*model.UploadSummary, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/admin/upload-csv", nil), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setBearer(req, token)

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &model.UploadSummary{Success: resp.Results.Success, Failed: resp.Results.Failed}, nil
}

func rewardsToModel(payloads []rewardPayload) []model.Reward {
	rewards := make([]model.Reward, 0, len(payloads))
	for _, r := range payloads {
		rewards = append(rewards, r.toModel())
	}
	return rewards
}
