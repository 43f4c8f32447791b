package loyaltyapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, server
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestSendOTP(t *testing.T) {
	var gotBody sendOTPRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/send-otp" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(messageResponse{Success: true})
	})

	if err := client.SendOTP(context.Background(), "9876543210"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody.Phone != "9876543210" {
		t.Fatalf("unexpected phone sent: %q", gotBody.Phone)
	}
}

func TestSendOTPSurfacesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(messageResponse{Message: "Too many OTP requests"})
	})

	err := client.SendOTP(context.Background(), "9876543210")
	var upstream *domainErrors.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Message != "Too many OTP requests" {
		t.Fatalf("unexpected message: %q", upstream.Message)
	}
	if upstream.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", upstream.Status)
	}
}

func TestVerifyOTP(t *testing.T) {
	memberSince := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/verify-otp" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req verifyOTPRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Phone != "9876543210" || req.OTP != "123456" {
			t.Fatalf("unexpected payload: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(verifyOTPResponse{
			Success: true,
			Token:   "upstream-token",
			User: userPayload{
				ID:             "m-1",
				Phone:          "9876543210",
				Points:         4200,
				LifetimePoints: 4200,
				Tier:           "SILVER",
				TierProgress:   &tierProgressPayload{Progress: 84},
				NextTier:       &nextTierPayload{Tier: "GOLD", MinPoints: 5000},
				MemberSince:    memberSince,
			},
		})
	})

	result, err := client.VerifyOTP(context.Background(), "9876543210", "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token != "upstream-token" {
		t.Fatalf("unexpected token: %q", result.Token)
	}
	if result.Profile.Tier != model.TierSilver || result.Profile.Points != 4200 {
		t.Fatalf("unexpected profile: %+v", result.Profile)
	}
	if result.Profile.NextTier == nil || result.Profile.NextTier.MinPoints != 5000 {
		t.Fatalf("expected next tier threshold, got %+v", result.Profile.NextTier)
	}
	if result.Profile.TierProgress != 84 {
		t.Fatalf("unexpected tier progress: %v", result.Profile.TierProgress)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.Profile(context.Background(), "stale"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestProfileAttachesBearerToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(profileResponse{Success: true, User: userPayload{ID: "m-1", Tier: "ETERNAL"}})
	})

	profile, err := client.Profile(context.Background(), "secret-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ID != "m-1" {
		t.Fatalf("unexpected profile id: %q", profile.ID)
	}
	if profile.NextTier != nil {
		t.Fatal("expected absent next tier to stay nil")
	}
}

func TestTransactionsPagination(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/transactions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("page") != "2" || query.Get("limit") != "15" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		resp := transactionsResponse{
			Transactions: []transactionPayload{
				{ID: "t1", Type: "EARN", Points: 120, BalanceAfter: 420, Property: "Raghukul Grand"},
				{ID: "t2", Type: "REDEEM", Points: -500, BalanceAfter: 300},
			},
		}
		resp.Pagination.Total = 32
		resp.Pagination.Pages = 3
		_ = json.NewEncoder(w).Encode(resp)
	})

	page, err := client.Transactions(context.Background(), "token", 2, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 32 || page.Pages != 3 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	if len(page.Transactions) != 2 || page.Transactions[1].Type != model.TransactionRedeem {
		t.Fatalf("unexpected transactions: %+v", page.Transactions)
	}
}

func TestRewardsAndRedeem(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rewards":
			if r.URL.Query().Get("limit") != "20" {
				t.Fatalf("unexpected limit: %s", r.URL.RawQuery)
			}
			_ = json.NewEncoder(w).Encode(rewardsResponse{Rewards: []rewardPayload{
				{ID: "r1", Name: "Spa Hour", PointsRequired: 500, Category: "Spa", MinTier: "SILVER", IsActive: true},
			}})
		case "/transaction/redeem":
			var req redeemRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.RewardID != "r1" {
				t.Fatalf("unexpected reward id: %q", req.RewardID)
			}
			_ = json.NewEncoder(w).Encode(messageResponse{Success: true})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	})

	rewards, err := client.Rewards(context.Background(), "token", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rewards) != 1 || rewards[0].MinTier != model.TierSilver {
		t.Fatalf("unexpected rewards: %+v", rewards)
	}
	if err := client.Redeem(context.Background(), "token", "r1"); err != nil {
		t.Fatalf("unexpected redeem error: %v", err)
	}
}

func TestAdminEndpoints(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/admin-login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"token":   "admin-token",
				"admin":   map[string]string{"name": "Priya", "role": "MANAGER"},
			})
		case r.URL.Path == "/admin/dashboard":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"analytics": map[string]any{
					"totalUsers":      1200,
					"repeatVisitRate": 41.5,
					"tierDistribution": []map[string]any{
						{"_id": "ETERNAL", "count": 900},
						{"_id": "GOLD", "count": 120},
					},
				},
			})
		case r.URL.Path == "/admin/rewards/r9" && r.Method == http.MethodPut:
			var req toggleRewardRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.IsActive {
				t.Fatal("expected deactivation payload")
			}
			_ = json.NewEncoder(w).Encode(messageResponse{Success: true})
		case r.URL.Path == "/admin/users/u7/credit" && r.Method == http.MethodPost:
			var req creditRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Points != -50 || req.Reason != "correction" {
				t.Fatalf("unexpected credit payload: %+v", req)
			}
			_ = json.NewEncoder(w).Encode(messageResponse{Success: true})
		default:
			t.Fatalf("unexpected path: %s %s", r.Method, r.URL.Path)
		}
	})

	login, err := client.AdminLogin(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if login.Token != "admin-token" || login.Admin.Role != "MANAGER" {
		t.Fatalf("unexpected login result: %+v", login)
	}

	analytics, err := client.AdminDashboard(context.Background(), login.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analytics.TotalUsers != 1200 || analytics.RepeatVisitRate != 41.5 {
		t.Fatalf("unexpected analytics: %+v", analytics)
	}
	if len(analytics.TierDistribution) != 2 || analytics.TierDistribution[1].Tier != model.TierGold {
		t.Fatalf("unexpected tier distribution: %+v", analytics.TierDistribution)
	}

	if err := client.SetRewardActive(context.Background(), login.Token, "r9", false); err != nil {
		t.Fatalf("unexpected toggle error: %v", err)
	}
	if err := client.CreditPoints(context.Background(), login.Token, "u7", model.CreditRequest{Points: -50, Reason: "correction"}); err != nil {
		t.Fatalf("unexpected credit error: %v", err)
	}
}

func TestUploadCSV(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/upload-csv" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected multipart file: %v", err)
		}
		defer file.Close()
		if header.Filename != "bulk.csv" {
			t.Fatalf("unexpected filename: %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if !strings.HasPrefix(string(content), "phone,points") {
			t.Fatalf("unexpected file content: %q", content)
		}
		resp := uploadResponse{}
		resp.Results.Success = 18
		resp.Results.Failed = 2
		_ = json.NewEncoder(w).Encode(resp)
	})

	summary, err := client.UploadCSV(context.Background(), "token", "bulk.csv", strings.NewReader("phone,points\n9876543210,100\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Success != 18 || summary.Failed != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
