// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"tripsplit/internal/models"
)

// ErrNotFound is returned when a trip or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for tripsplit storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the handler layer.
type Store interface {
	// CreateUser persists a new user. The user's ID and timestamps are
	// populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when the user
	// does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateTrip persists a new trip together with its initial members.
	// The trip's ID, share code and timestamps are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with its full member list. Returns
	// ErrNotFound when the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// GetTripByShareCode retrieves a trip by its share code. Returns
	// ErrNotFound when no trip has the given code.
	GetTripByShareCode(ctx context.Context, shareCode string) (*models.Trip, error)

	// ListTripsForUser retrieves all trips the given user is a member of.
	ListTripsForUser(ctx context.Context, userID string) ([]models.Trip, error)

	// AddTripMember appends a member to a trip.
	AddTripMember(ctx context.Context, tripID string, member models.TripMember) error

	// CreateExpense persists a new expense with its splits. The expense's
	// ID and timestamps are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense scoped to a trip. Returns
	// ErrNotFound when the expense does not exist in that trip.
	GetExpense(ctx context.Context, tripID, expenseID string) (*models.Expense, error)

	// UpdateExpense replaces an expense's fields and splits. Returns
	// ErrNotFound when the expense does not exist.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense and its splits. Returns ErrNotFound
	// when the expense does not exist in that trip.
	DeleteExpense(ctx context.Context, tripID, expenseID string) error

	// ListTripExpenses retrieves all expenses for a trip, most recent
	// date first.
	ListTripExpenses(ctx context.Context, tripID string) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
