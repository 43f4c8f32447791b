package usecase

import "github.com/kashieternal/rewardsgate/internal/domain/model"

const historyDateLayout = "02 Jan 2006"

// DayGroup is one calendar day of transaction history.
type DayGroup struct {
	Date         string
	Transactions []model.Transaction
}

// GroupByDate buckets transactions by calendar day, preserving the order in
// which the server returned them (newest first).
func GroupByDate(transactions []model.Transaction) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)

	for _, tx := range transactions {
		key := tx.CreatedAt.Format(historyDateLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: key})
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}

	return groups
}
