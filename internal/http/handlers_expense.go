package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tripsplit/internal/calculator"
	"tripsplit/internal/middleware"
	"tripsplit/internal/models"
)

type createExpenseRequest struct {
	Amount       float64            `json:"amount"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	Date         string             `json:"date,omitempty"`
	SplitWith    []string           `json:"splitWith"`
	SplitType    string             `json:"splitType"`
	CustomSplits map[string]float64 `json:"customSplits,omitempty"`
}

type updateExpenseRequest struct {
	Amount       *float64           `json:"amount,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Category     *string            `json:"category,omitempty"`
	Date         *string            `json:"date,omitempty"`
	SplitWith    []string           `json:"splitWith,omitempty"`
	SplitType    string             `json:"splitType,omitempty"`
	CustomSplits map[string]float64 `json:"customSplits,omitempty"`
}

// parseDate accepts RFC 3339 or plain YYYY-MM-DD.
func parseDate(value string) (int64, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Unix(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q", value)
	}
	return t.Unix(), nil
}

// validateParticipants checks every split participant is a trip member.
func validateParticipants(trip *models.Trip, participants []string) error {
	for _, id := range participants {
		if !trip.IsMember(id) {
			return fmt.Errorf("participant %s is not a trip member", id)
		}
	}
	return nil
}

// splitMode resolves the effective split mode. Custom amounts without an
// explicit equal mode mean a custom split.
func splitMode(mode string, custom map[string]float64) string {
	if mode != models.SplitEqual && len(custom) > 0 {
		return models.SplitCustom
	}
	return mode
}

// respondCalculatorError maps calculator validation failures to 400.
func respondCalculatorError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, calculator.ErrInvalidAmount) ||
		errors.Is(err, calculator.ErrNoParticipants) ||
		errors.Is(err, calculator.ErrSplitMismatch) {
		respondError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	expenses, err := s.store.ListTripExpenses(r.Context(), trip.ID)
	if err != nil {
		slog.Error("Failed to list expenses", "trip_id", trip.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Description == "" {
		respondError(w, http.StatusBadRequest, "Description is required")
		return
	}
	if req.Category == "" {
		respondError(w, http.StatusBadRequest, "Category is required")
		return
	}
	if err := validateParticipants(trip, req.SplitWith); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var date int64
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}

	splits, err := calculator.ComputeSplits(calculator.SplitRequest{
		Amount:        req.Amount,
		Participants:  req.SplitWith,
		Mode:          splitMode(req.SplitType, req.CustomSplits),
		CustomAmounts: req.CustomSplits,
	})
	if err != nil {
		if !respondCalculatorError(w, err) {
			slog.Error("Split computation failed", "trip_id", trip.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	expense := &models.Expense{
		TripID:      trip.ID,
		PaidBy:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        date,
		Splits:      splits,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("Failed to create expense", "trip_id", trip.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.Info("Expense created", "expense_id", expense.ID, "trip_id", trip.ID, "amount", expense.Amount)
	respondJSON(w, http.StatusCreated, map[string]any{"expense": expense})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	expense, err := s.store.GetExpense(ctx, trip.ID, r.PathValue("expenseID"))
	if err != nil {
		respondStoreError(w, err, "Expense not found")
		return
	}

	if !expense.CanModify(userID) {
		respondError(w, http.StatusForbidden, "You can only edit expenses you paid for")
		return
	}

	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			respondError(w, http.StatusBadRequest, calculator.ErrInvalidAmount.Error())
			return
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		if *req.Description == "" {
			respondError(w, http.StatusBadRequest, "Description is required")
			return
		}
		expense.Description = *req.Description
	}
	if req.Category != nil {
		if *req.Category == "" {
			respondError(w, http.StatusBadRequest, "Category is required")
			return
		}
		expense.Category = *req.Category
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		expense.Date = d
	}

	// Splits are recomputed only when the request carries new participants
	// and an amount to divide.
	if len(req.SplitWith) > 0 && req.Amount != nil {
		if err := validateParticipants(trip, req.SplitWith); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		splits, err := calculator.ComputeSplits(calculator.SplitRequest{
			Amount:        *req.Amount,
			Participants:  req.SplitWith,
			Mode:          splitMode(req.SplitType, req.CustomSplits),
			CustomAmounts: req.CustomSplits,
		})
		if err != nil {
			if !respondCalculatorError(w, err) {
				slog.Error("Split computation failed", "expense_id", expense.ID, "error", err)
				respondError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}
		expense.Splits = splits
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		respondStoreError(w, err, "Expense not found")
		return
	}

	slog.Info("Expense updated", "expense_id", expense.ID, "trip_id", trip.ID)
	respondJSON(w, http.StatusOK, map[string]any{"expense": expense})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	expense, err := s.store.GetExpense(ctx, trip.ID, r.PathValue("expenseID"))
	if err != nil {
		respondStoreError(w, err, "Expense not found")
		return
	}

	if !expense.CanModify(userID) {
		respondError(w, http.StatusForbidden, "You can only delete expenses you paid for")
		return
	}

	if err := s.store.DeleteExpense(ctx, trip.ID, expense.ID); err != nil {
		respondStoreError(w, err, "Expense not found")
		return
	}

	slog.Info("Expense deleted", "expense_id", expense.ID, "trip_id", trip.ID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	expenses, err := s.store.ListTripExpenses(r.Context(), trip.ID)
	if err != nil {
		slog.Error("Failed to list expenses", "trip_id", trip.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	report := calculator.ComputeBalance(expenses, userID)
	respondJSON(w, http.StatusOK, map[string]any{"balance": report})
}
