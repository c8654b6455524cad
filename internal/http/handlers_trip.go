package http

import (
	"log/slog"
	"net/http"
	"time"

	"tripsplit/internal/middleware"
	"tripsplit/internal/models"
)

type createTripRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type joinTripRequest struct {
	ShareCode string `json:"shareCode"`
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	trips, err := s.store.ListTripsForUser(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to list trips", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"trips": trips})
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Trip name is required")
		return
	}

	// The creator joins as admin; identity comes from the session claims.
	trip := &models.Trip{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
		Members: []models.TripMember{
			{
				UserID:   userID,
				Email:    middleware.GetEmail(ctx),
				Name:     middleware.GetName(ctx),
				Role:     models.RoleAdmin,
				JoinedAt: time.Now().Unix(),
			},
		},
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("Failed to create trip", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.Info("Trip created", "trip_id", trip.ID, "user_id", userID)
	respondJSON(w, http.StatusCreated, map[string]any{"trip": trip})
}

func (s *Server) handleJoinTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req joinTripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ShareCode == "" {
		respondError(w, http.StatusBadRequest, "Share code is required")
		return
	}

	trip, err := s.store.GetTripByShareCode(ctx, req.ShareCode)
	if err != nil {
		respondStoreError(w, err, "Invalid share code")
		return
	}

	if trip.IsMember(userID) {
		respondError(w, http.StatusConflict, "You are already a member of this trip")
		return
	}

	member := models.TripMember{
		UserID:   userID,
		Email:    middleware.GetEmail(ctx),
		Name:     middleware.GetName(ctx),
		Role:     models.RoleMember,
		JoinedAt: time.Now().Unix(),
	}
	if err := s.store.AddTripMember(ctx, trip.ID, member); err != nil {
		slog.Error("Failed to add trip member", "trip_id", trip.ID, "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	trip.Members = append(trip.Members, member)

	slog.Info("User joined trip", "trip_id", trip.ID, "user_id", userID)
	respondJSON(w, http.StatusOK, map[string]any{"message": "Successfully joined trip", "trip": trip})
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"trip": trip})
}
