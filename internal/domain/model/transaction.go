package model

import "time"

// TransactionType describes the origin of a points movement.
type TransactionType string

const (
	TransactionEarn        TransactionType = "EARN"
	TransactionRedeem      TransactionType = "REDEEM"
	TransactionWelcome     TransactionType = "WELCOME"
	TransactionBonus       TransactionType = "BONUS"
	TransactionAdminCredit TransactionType = "ADMIN_CREDIT"
	TransactionAdminDebit  TransactionType = "ADMIN_DEBIT"
	TransactionExpire      TransactionType = "EXPIRE"
)

// Transaction is a read-only points movement owned by the loyalty API.
// BalanceAfter reflects the server-computed running balance and is never
// recomputed by the gateway.
type Transaction struct {
	ID           string
	Type         TransactionType
	Points       int64
	BalanceAfter int64
	Property     string
	Description  string
	AmountSpent  float64
	CreatedAt    time.Time
}

// TransactionPage is one page of history together with pagination totals.
type TransactionPage struct {
	Transactions []Transaction
	Total        int64
	Pages        int64
}
