package usecase

import (
	"testing"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

func TestCheckRedeemable(t *testing.T) {
	reward := &model.Reward{ID: "r1", Name: "Dinner for Two", PointsRequired: 500}

	short := CheckRedeemable(300, reward)
	if short.CanRedeem {
		t.Fatal("expected redeem to be disabled with insufficient points")
	}
	if short.Shortfall != 200 {
		t.Fatalf("expected shortfall 200, got %d", short.Shortfall)
	}
	if short.Message() != "Need 200 more points" {
		t.Fatalf("unexpected shortfall message: %q", short.Message())
	}

	ok := CheckRedeemable(600, reward)
	if !ok.CanRedeem {
		t.Fatal("expected redeem to be enabled with sufficient points")
	}
	if ok.Message() != "" {
		t.Fatalf("expected empty message when redeemable, got %q", ok.Message())
	}

	exact := CheckRedeemable(500, reward)
	if !exact.CanRedeem {
		t.Fatal("expected redeem to be enabled with exact balance")
	}
}

func TestFilterRewards(t *testing.T) {
	rewards := []model.Reward{
		{ID: "1", Category: "Dining"},
		{ID: "2", Category: "Stay"},
		{ID: "3", Category: "Dining"},
	}

	cases := []struct {
		name     string
		category string
		expected []string
	}{
		{"all keyword", "ALL", []string{"1", "2", "3"}},
		{"empty category", "", []string{"1", "2", "3"}},
		{"dining", "Dining", []string{"1", "3"}},
		{"no match", "Spa", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterRewards(rewards, tc.category)
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %d rewards, got %d", len(tc.expected), len(got))
			}
			for i, id := range tc.expected {
				if got[i].ID != id {
					t.Fatalf("expected reward %s at index %d, got %s", id, i, got[i].ID)
				}
			}
		})
	}
}
