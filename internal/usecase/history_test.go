package usecase

import (
	"testing"
	"time"

	"github.com/kashieternal/rewardsgate/internal/domain/model"
)

func TestGroupByDate(t *testing.T) {
	day1 := time.Date(2024, time.November, 12, 19, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, time.November, 11, 9, 15, 0, 0, time.UTC)

	transactions := []model.Transaction{
		{ID: "a", CreatedAt: day1},
		{ID: "b", CreatedAt: day1.Add(-2 * time.Hour)},
		{ID: "c", CreatedAt: day2},
	}

	groups := GroupByDate(transactions)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}
	if groups[0].Date != "12 Nov 2024" {
		t.Fatalf("unexpected first group date: %s", groups[0].Date)
	}
	if len(groups[0].Transactions) != 2 {
		t.Fatalf("expected 2 transactions on first day, got %d", len(groups[0].Transactions))
	}
	if groups[0].Transactions[0].ID != "a" || groups[0].Transactions[1].ID != "b" {
		t.Fatal("expected server ordering preserved within a day")
	}
	if groups[1].Date != "11 Nov 2024" || len(groups[1].Transactions) != 1 {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
}

func TestGroupByDateEmpty(t *testing.T) {
	if groups := GroupByDate(nil); groups != nil {
		t.Fatalf("expected nil groups for empty history, got %v", groups)
	}
}
