package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"tripsplit/internal/middleware"
	"tripsplit/internal/summary"
	"tripsplit/internal/whatsapp"
)

type shareWhatsAppRequest struct {
	Summary string `json:"summary"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	if s.summarizer == nil {
		respondError(w, http.StatusServiceUnavailable, "Summary generation is not configured")
		return
	}

	expenses, err := s.store.ListTripExpenses(ctx, trip.ID)
	if err != nil {
		slog.Error("Failed to list expenses", "trip_id", trip.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	text, err := s.summarizer.Generate(ctx, trip, expenses)
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrNoExpenses):
			respondError(w, http.StatusBadRequest, "No expenses found for this trip")
		case errors.Is(err, summary.ErrUpstream), errors.Is(err, summary.ErrEmptyReply):
			slog.Error("Summary generation failed", "trip_id", trip.ID, "error", err)
			respondError(w, http.StatusBadGateway, "Failed to generate summary")
		default:
			slog.Error("Summary generation failed", "trip_id", trip.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	slog.Info("Summary generated", "trip_id", trip.ID, "length", len(text))
	respondJSON(w, http.StatusOK, map[string]any{"summary": text, "success": true})
}

func (s *Server) handleShareWhatsApp(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	trip := s.memberTrip(w, r, userID)
	if trip == nil {
		return
	}

	var req shareWhatsAppRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Summary) == "" {
		respondError(w, http.StatusBadRequest, "Summary is required")
		return
	}

	message := whatsapp.Truncate(whatsapp.Format(req.Summary, trip.Name))

	respondJSON(w, http.StatusOK, map[string]any{
		"whatsappUrl": whatsapp.ShareURL(message),
		"message":     message,
		"success":     true,
	})
}
