package summary

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tripsplit/internal/models"
)

// expenseView is the expense shape embedded in the prompt: user IDs are
// resolved to member display names so the model never sees opaque UUIDs.
type expenseView struct {
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	PaidBy      string      `json:"paidBy"`
	Splits      []splitView `json:"splits"`
}

type splitView struct {
	Person string  `json:"person"`
	Amount float64 `json:"amount"`
}

// BuildPrompt renders the summarization prompt for a trip's expenses.
func BuildPrompt(trip *models.Trip, expenses []models.Expense) (string, error) {
	views := make([]expenseView, len(expenses))
	for i, e := range expenses {
		splits := make([]splitView, len(e.Splits))
		for j, s := range e.Splits {
			splits[j] = splitView{
				Person: trip.MemberName(s.UserID),
				Amount: s.Amount,
			}
		}
		views[i] = expenseView{
			Description: e.Description,
			Amount:      e.Amount,
			Category:    e.Category,
			Date:        time.Unix(e.Date, 0).UTC().Format("2006-01-02"),
			PaidBy:      trip.MemberName(e.PaidBy),
			Splits:      splits,
		}
	}

	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode expense data: %w", err)
	}

	names := make([]string, len(trip.Members))
	for i, m := range trip.Members {
		names[i] = m.Name
	}

	return fmt.Sprintf(`You are a financial assistant helping to summarize trip expenses. Please analyze the following expense data and create a comprehensive summary.

Trip: %s
Members: %s

Expenses:
%s

Please provide:
1. A summary table showing total expenses by category
2. A breakdown of who paid what
3. A settlement summary showing who owes money to whom
4. Key insights about spending patterns

Format your response as clean, readable text with tables using markdown formatting. Be concise but thorough.`,
		trip.Name, strings.Join(names, ", "), data), nil
}
