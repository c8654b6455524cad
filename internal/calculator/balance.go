package calculator

import "tripsplit/internal/models"

// ComputeBalance summarizes a user's financial position across a trip's
// expenses:
//
//   - TotalSpend: sum of all expense amounts
//   - AmountPaid: sum of amounts for expenses the user paid
//   - AmountOwed: sum of the user's split amounts
//
// Input order does not matter, and an empty collection yields a zero report.
func ComputeBalance(expenses []models.Expense, userID string) models.BalanceReport {
	var report models.BalanceReport
	for i := range expenses {
		e := &expenses[i]
		report.TotalSpend += e.Amount
		if e.PaidBy == userID {
			report.AmountPaid += e.Amount
		}
		report.AmountOwed += e.SplitFor(userID)
	}
	return report
}
