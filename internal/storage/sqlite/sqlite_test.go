package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tripsplit/internal/models"
	"tripsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Name: name, PasswordHash: "x"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamps", func(t *testing.T) {
		user := createTestUser(t, store, "alice@example.com", "Alice")

		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 || user.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
	})

	t.Run("GetUserByEmail finds existing user", func(t *testing.T) {
		created := createTestUser(t, store, "bob@example.com", "Bob")

		got, err := store.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != created.ID || got.Name != "Bob" {
			t.Errorf("GetUserByEmail = %+v, want %+v", got, created)
		}
	})

	t.Run("GetUserByEmail returns nil for unknown email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil user, got %+v", got)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		createTestUser(t, store, "dup@example.com", "First")

		err := store.CreateUser(ctx, &models.User{Email: "dup@example.com", Name: "Second", PasswordHash: "x"})
		if err == nil {
			t.Error("Expected duplicate email insert to fail")
		}
	})
}

func TestTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")

	newTrip := func(t *testing.T, name string) *models.Trip {
		t.Helper()
		trip := &models.Trip{
			Name:      name,
			CreatedBy: alice.ID,
			Members: []models.TripMember{
				{UserID: alice.ID, Email: alice.Email, Name: alice.Name, Role: models.RoleAdmin},
			},
		}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		return trip
	}

	t.Run("CreateTrip generates ID and share code", func(t *testing.T) {
		trip := newTrip(t, "Goa 2026")

		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.ShareCode == "" {
			t.Error("Expected share code to be generated")
		}
		if trip.Members[0].JoinedAt == 0 {
			t.Error("Expected member JoinedAt to be set")
		}
	})

	t.Run("GetTrip returns members", func(t *testing.T) {
		trip := newTrip(t, "Weekend")

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if len(got.Members) != 1 || got.Members[0].UserID != alice.ID {
			t.Errorf("Members = %+v, want creator only", got.Members)
		}
		if got.Members[0].Role != models.RoleAdmin {
			t.Errorf("Creator role = %q, want admin", got.Members[0].Role)
		}
	})

	t.Run("GetTrip unknown ID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "no-such-trip")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("GetTripByShareCode round-trips", func(t *testing.T) {
		trip := newTrip(t, "Hike")

		got, err := store.GetTripByShareCode(ctx, trip.ShareCode)
		if err != nil {
			t.Fatalf("GetTripByShareCode failed: %v", err)
		}
		if got.ID != trip.ID {
			t.Errorf("trip ID = %s, want %s", got.ID, trip.ID)
		}

		if _, err := store.GetTripByShareCode(ctx, "bogus"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("AddTripMember and ListTripsForUser", func(t *testing.T) {
		trip := newTrip(t, "Road trip")

		err := store.AddTripMember(ctx, trip.ID, models.TripMember{
			UserID: bob.ID, Email: bob.Email, Name: bob.Name, Role: models.RoleMember,
		})
		if err != nil {
			t.Fatalf("AddTripMember failed: %v", err)
		}

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Fatalf("got %d members, want 2", len(got.Members))
		}
		if !got.IsMember(bob.ID) || got.IsAdmin(bob.ID) {
			t.Errorf("bob membership = %+v, want plain member", got.Member(bob.ID))
		}

		trips, err := store.ListTripsForUser(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListTripsForUser failed: %v", err)
		}
		if len(trips) != 1 || trips[0].ID != trip.ID {
			t.Errorf("bob's trips = %+v, want [%s]", trips, trip.ID)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")

	trip := &models.Trip{
		Name:      "Dinner crew",
		CreatedBy: alice.ID,
		Members: []models.TripMember{
			{UserID: alice.ID, Email: alice.Email, Name: alice.Name, Role: models.RoleAdmin},
			{UserID: bob.ID, Email: bob.Email, Name: bob.Name, Role: models.RoleMember},
		},
	}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	newExpense := func(t *testing.T, amount float64) *models.Expense {
		t.Helper()
		expense := &models.Expense{
			TripID:      trip.ID,
			PaidBy:      alice.ID,
			Amount:      amount,
			Description: "Dinner",
			Category:    "food",
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, Amount: amount / 2},
				{UserID: bob.ID, Amount: amount / 2},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		return expense
	}

	t.Run("CreateExpense and GetExpense round-trip", func(t *testing.T) {
		expense := newExpense(t, 80)

		got, err := store.GetExpense(ctx, trip.ID, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount != 80 || got.PaidBy != alice.ID {
			t.Errorf("expense = %+v", got)
		}
		if len(got.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(got.Splits))
		}
		for _, s := range got.Splits {
			if s.Amount != 40 {
				t.Errorf("%s split = %v, want 40", s.UserID, s.Amount)
			}
			if s.Settled {
				t.Errorf("%s settled = true, want false", s.UserID)
			}
		}
	})

	t.Run("GetExpense scoped to trip", func(t *testing.T) {
		expense := newExpense(t, 10)

		_, err := store.GetExpense(ctx, "other-trip", expense.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("UpdateExpense replaces splits", func(t *testing.T) {
		expense := newExpense(t, 60)

		expense.Amount = 90
		expense.Description = "Dinner and drinks"
		expense.Splits = []models.ExpenseSplit{
			{UserID: alice.ID, Amount: 30},
			{UserID: bob.ID, Amount: 60},
		}
		if err := store.UpdateExpense(ctx, expense); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, trip.ID, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount != 90 || got.Description != "Dinner and drinks" {
			t.Errorf("expense = %+v", got)
		}
		if got.SplitFor(bob.ID) != 60 {
			t.Errorf("bob split = %v, want 60", got.SplitFor(bob.ID))
		}
	})

	t.Run("UpdateExpense unknown ID returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateExpense(ctx, &models.Expense{ID: "nope", TripID: trip.ID, Amount: 1})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteExpense removes expense", func(t *testing.T) {
		expense := newExpense(t, 25)

		if err := store.DeleteExpense(ctx, trip.ID, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, trip.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteExpense(ctx, trip.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListTripExpenses returns splits", func(t *testing.T) {
		expenses, err := store.ListTripExpenses(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListTripExpenses failed: %v", err)
		}
		if len(expenses) == 0 {
			t.Fatal("expected at least one expense")
		}
		for _, e := range expenses {
			if len(e.Splits) == 0 {
				t.Errorf("expense %s has no splits", e.ID)
			}
		}
	})
}
