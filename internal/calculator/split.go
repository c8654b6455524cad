// Package calculator implements the pure split and balance computations.
// Nothing in this package touches storage or shared state; every function is
// deterministic in its inputs.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"tripsplit/internal/models"
)

// Tolerance is the rounding tolerance, in currency units, within which split
// amounts must sum to the expense total.
const Tolerance = 0.01

var (
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrNoParticipants = errors.New("must have at least one participant")
	ErrSplitMismatch  = errors.New("custom splits must sum to total amount")
)

// SplitRequest describes how an expense total should be divided.
type SplitRequest struct {
	// Amount is the total to divide. Must be positive.
	Amount float64

	// Participants are the user IDs sharing the expense. Must be
	// non-empty; duplicates are collapsed to a single split entry.
	Participants []string

	// Mode is models.SplitEqual or models.SplitCustom.
	Mode string

	// CustomAmounts maps user ID to owed amount. Only consulted in custom
	// mode; missing entries default to 0.
	CustomAmounts map[string]float64
}

// ComputeSplits converts a SplitRequest into per-participant splits, one
// entry per unique participant in request order, each with Settled=false.
//
// Equal mode divides the amount evenly with plain float division; rounding
// remainders are not redistributed, so a 100/3 split stores 33.33... for each
// participant. Custom mode takes each participant's amount from
// CustomAmounts and fails with ErrSplitMismatch when the supplied amounts do
// not sum to the total within Tolerance.
func ComputeSplits(req SplitRequest) ([]models.ExpenseSplit, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(req.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	// Collapse duplicate IDs while preserving request order.
	seen := make(map[string]bool, len(req.Participants))
	participants := make([]string, 0, len(req.Participants))
	for _, id := range req.Participants {
		if !seen[id] {
			seen[id] = true
			participants = append(participants, id)
		}
	}

	splits := make([]models.ExpenseSplit, 0, len(participants))

	switch req.Mode {
	case models.SplitCustom:
		var sum float64
		for _, id := range participants {
			amount := req.CustomAmounts[id]
			if amount < 0 {
				return nil, fmt.Errorf("%w: negative amount for %s", ErrInvalidAmount, id)
			}
			sum += amount
			splits = append(splits, models.ExpenseSplit{UserID: id, Amount: amount})
		}
		if math.Abs(sum-req.Amount) > Tolerance {
			return nil, fmt.Errorf("%w: got %.2f, want %.2f", ErrSplitMismatch, sum, req.Amount)
		}
	default:
		share := req.Amount / float64(len(participants))
		for _, id := range participants {
			splits = append(splits, models.ExpenseSplit{UserID: id, Amount: share})
		}
	}

	return splits, nil
}
