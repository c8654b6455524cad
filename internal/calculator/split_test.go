package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"tripsplit/internal/models"
)

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		req          SplitRequest
		wantErr      error
		validateFunc func(t *testing.T, splits []models.ExpenseSplit)
	}{
		{
			name: "equal split between two people",
			req: SplitRequest{
				Amount:       50,
				Participants: []string{"alice", "bob"},
				Mode:         models.SplitEqual,
			},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				if len(splits) != 2 {
					t.Fatalf("got %d splits, want 2", len(splits))
				}
				for _, s := range splits {
					if s.Amount != 25 {
						t.Errorf("%s amount = %v, want 25", s.UserID, s.Amount)
					}
					if s.Settled {
						t.Errorf("%s settled = true, want false", s.UserID)
					}
				}
			},
		},
		{
			name: "equal split of 100 among three sums within tolerance",
			req: SplitRequest{
				Amount:       100,
				Participants: []string{"a", "b", "c"},
				Mode:         models.SplitEqual,
			},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				var sum float64
				for _, s := range splits {
					if math.Abs(s.Amount-100.0/3.0) > Tolerance {
						t.Errorf("%s amount = %v, want 33.33...", s.UserID, s.Amount)
					}
					sum += s.Amount
				}
				if math.Abs(sum-100) > Tolerance {
					t.Errorf("sum = %v, want 100 within %v", sum, Tolerance)
				}
			},
		},
		{
			name: "equal split of 120 among four",
			req: SplitRequest{
				Amount:       120,
				Participants: []string{"a", "b", "c", "d"},
				Mode:         models.SplitEqual,
			},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				for _, s := range splits {
					if s.Amount != 30 {
						t.Errorf("%s amount = %v, want 30", s.UserID, s.Amount)
					}
				}
			},
		},
		{
			name: "custom split passes amounts through",
			req: SplitRequest{
				Amount:        50,
				Participants:  []string{"alice", "bob"},
				Mode:          models.SplitCustom,
				CustomAmounts: map[string]float64{"alice": 20, "bob": 30},
			},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				want := []models.ExpenseSplit{
					{UserID: "alice", Amount: 20},
					{UserID: "bob", Amount: 30},
				}
				if !reflect.DeepEqual(splits, want) {
					t.Errorf("splits = %+v, want %+v", splits, want)
				}
			},
		},
		{
			name: "custom split missing entry defaults to zero",
			req: SplitRequest{
				Amount:        30,
				Participants:  []string{"alice", "bob"},
				Mode:          models.SplitCustom,
				CustomAmounts: map[string]float64{"alice": 30},
			},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				if splits[1].UserID != "bob" || splits[1].Amount != 0 {
					t.Errorf("bob split = %+v, want 0", splits[1])
				}
			},
		},
		{
			name: "custom split mismatch is rejected",
			req: SplitRequest{
				Amount:        100,
				Participants:  []string{"alice", "bob"},
				Mode:          models.SplitCustom,
				CustomAmounts: map[string]float64{"alice": 20, "bob": 30},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name: "custom split within tolerance is accepted",
			req: SplitRequest{
				Amount:        100,
				Participants:  []string{"a", "b", "c"},
				Mode:          models.SplitCustom,
				CustomAmounts: map[string]float64{"a": 33.33, "b": 33.33, "c": 33.34},
			},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				if len(splits) != 3 {
					t.Fatalf("got %d splits, want 3", len(splits))
				}
			},
		},
		{
			name: "negative custom amount is rejected",
			req: SplitRequest{
				Amount:        10,
				Participants:  []string{"alice", "bob"},
				Mode:          models.SplitCustom,
				CustomAmounts: map[string]float64{"alice": 20, "bob": -10},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "zero amount is rejected",
			req: SplitRequest{
				Amount:       0,
				Participants: []string{"alice"},
				Mode:         models.SplitEqual,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount is rejected",
			req: SplitRequest{
				Amount:       -5,
				Participants: []string{"alice"},
				Mode:         models.SplitEqual,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "empty participants is rejected",
			req: SplitRequest{
				Amount: 10,
				Mode:   models.SplitEqual,
			},
			wantErr: ErrNoParticipants,
		},
		{
			name: "duplicate participants collapse to one split",
			req: SplitRequest{
				Amount:       30,
				Participants: []string{"alice", "bob", "alice"},
				Mode:         models.SplitEqual,
			},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				if len(splits) != 2 {
					t.Fatalf("got %d splits, want 2", len(splits))
				}
				if splits[0].Amount != 15 || splits[1].Amount != 15 {
					t.Errorf("splits = %+v, want 15 each", splits)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplits(tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits failed: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestComputeSplits_OrderInvariant(t *testing.T) {
	custom := map[string]float64{"a": 10, "b": 20, "c": 30}

	first, err := ComputeSplits(SplitRequest{
		Amount:        60,
		Participants:  []string{"a", "b", "c"},
		Mode:          models.SplitCustom,
		CustomAmounts: custom,
	})
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}

	second, err := ComputeSplits(SplitRequest{
		Amount:        60,
		Participants:  []string{"c", "a", "b"},
		Mode:          models.SplitCustom,
		CustomAmounts: custom,
	})
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}

	// Each participant's amount is the same no matter where they appear in
	// the request.
	byUser := func(splits []models.ExpenseSplit) map[string]float64 {
		m := make(map[string]float64)
		for _, s := range splits {
			m[s.UserID] = s.Amount
		}
		return m
	}
	if !reflect.DeepEqual(byUser(first), byUser(second)) {
		t.Errorf("splits differ by order: %+v vs %+v", first, second)
	}
}

func TestComputeSplits_Idempotent(t *testing.T) {
	req := SplitRequest{
		Amount:       75,
		Participants: []string{"alice", "bob", "carol"},
		Mode:         models.SplitEqual,
	}

	first, err := ComputeSplits(req)
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}
	second, err := ComputeSplits(req)
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}
