package model

// AdminIdentity describes the authenticated back-office operator.
type AdminIdentity struct {
	Name string
	Role string
}

// TierCount is one bucket of the analytics tier distribution.
type TierCount struct {
	Tier  Tier
	Count int64
}

// DashboardAnalytics aggregates the program-wide figures shown on the admin
// dashboard. All values are computed by the loyalty API.
type DashboardAnalytics struct {
	TotalUsers          int64
	ActiveThisMonth     int64
	TotalPointsIssued   int64
	TotalPointsRedeemed int64
	MonthlyPointsEarned int64
	RepeatVisitRate     float64
	TierDistribution    []TierCount
}

// CreditRequest is a manual points adjustment issued by an admin.
// Negative points deduct.
type CreditRequest struct {
	Points int64
	Reason string
}

// UploadSummary reports the outcome of a bulk CSV transaction upload.
type UploadSummary struct {
	Success int64
	Failed  int64
}
