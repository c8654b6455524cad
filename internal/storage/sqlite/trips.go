package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripsplit/internal/models"
	"tripsplit/internal/storage"
)

// CreateTrip persists a new trip and its initial members. The trip's ID,
// share code and timestamps are generated here.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.ShareCode == "" {
		code, err := newShareCode()
		if err != nil {
			return err
		}
		trip.ShareCode = code
	}
	now := time.Now().Unix()
	if trip.CreatedAt == 0 {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, description, created_by, share_code, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		trip.ID, trip.Name, trip.Description, trip.CreatedBy, trip.ShareCode, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for i := range trip.Members {
		m := &trip.Members[i]
		if m.JoinedAt == 0 {
			m.JoinedAt = now
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO trip_members (trip_id, user_id, email, name, role, joined_at) VALUES (?, ?, ?, ?, ?, ?)",
			trip.ID, m.UserID, m.Email, m.Name, m.Role, m.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID, including its full member list.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return s.getTrip(ctx, "id", tripID)
}

// GetTripByShareCode retrieves a trip by its share code.
func (s *SQLiteStore) GetTripByShareCode(ctx context.Context, shareCode string) (*models.Trip, error) {
	return s.getTrip(ctx, "share_code", shareCode)
}

func (s *SQLiteStore) getTrip(ctx context.Context, column, value string) (*models.Trip, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_by, share_code, created_at, updated_at
		FROM trips
		WHERE %s = ?
	`, column)

	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.CreatedBy,
		&trip.ShareCode,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s=%s: %w", column, value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	members, err := s.tripMembers(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Members = members

	return trip, nil
}

func (s *SQLiteStore) tripMembers(ctx context.Context, tripID string) ([]models.TripMember, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, email, name, role, joined_at FROM trip_members WHERE trip_id = ? ORDER BY joined_at, user_id",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip members: %w", err)
	}
	defer rows.Close()

	var members []models.TripMember
	for rows.Next() {
		var m models.TripMember
		if err := rows.Scan(&m.UserID, &m.Email, &m.Name, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip members: %w", err)
	}

	return members, nil
}

// ListTripsForUser retrieves all trips the given user is a member of, newest
// first.
func (s *SQLiteStore) ListTripsForUser(ctx context.Context, userID string) ([]models.Trip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id
		FROM trips t
		JOIN trip_members m ON m.trip_id = t.id
		WHERE m.user_id = ?
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}

	return trips, nil
}

// AddTripMember appends a member to a trip and bumps the trip's updated_at.
func (s *SQLiteStore) AddTripMember(ctx context.Context, tripID string, member models.TripMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trip_members (trip_id, user_id, email, name, role, joined_at) VALUES (?, ?, ?, ?, ?, ?)",
		tripID, member.UserID, member.Email, member.Name, member.Role, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip member: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE trips SET updated_at = ? WHERE id = ?",
		time.Now().Unix(), tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch trip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
