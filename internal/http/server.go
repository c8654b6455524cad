// Package http provides the JSON API server for tripsplit.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripsplit/internal/auth"
	"tripsplit/internal/middleware"
	"tripsplit/internal/models"
	"tripsplit/internal/storage"
)

// Summarizer generates a natural-language summary for a trip's expenses.
// Satisfied by summary.Client; nil disables the feature.
type Summarizer interface {
	Generate(ctx context.Context, trip *models.Trip, expenses []models.Expense) (string, error)
}

// Server holds the API's dependencies and implements its handlers.
type Server struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	summarizer    Summarizer
	tokenDuration time.Duration
	secureCookies bool
}

// New creates an API server. summarizer may be nil, in which case the
// summary endpoints report the feature as unavailable.
func New(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, summarizer Summarizer, tokenDuration time.Duration, secureCookies bool) *Server {
	return &Server{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		summarizer:    summarizer,
		tokenDuration: tokenDuration,
		secureCookies: secureCookies,
	}
}

// Handler builds the routing table and wraps it in the middleware chain
// (metrics and logging outermost, CORS, then per-route auth).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public auth endpoints.
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	// Everything else requires a valid session token.
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(s.jwtManager, h)
	}
	mux.Handle("GET /api/auth/me", authed(s.handleMe))

	mux.Handle("GET /api/trips", authed(s.handleListTrips))
	mux.Handle("POST /api/trips", authed(s.handleCreateTrip))
	mux.Handle("POST /api/trips/join", authed(s.handleJoinTrip))
	mux.Handle("GET /api/trips/{tripID}", authed(s.handleGetTrip))

	mux.Handle("GET /api/trips/{tripID}/expenses", authed(s.handleListExpenses))
	mux.Handle("POST /api/trips/{tripID}/expenses", authed(s.handleCreateExpense))
	mux.Handle("PUT /api/trips/{tripID}/expenses/{expenseID}", authed(s.handleUpdateExpense))
	mux.Handle("DELETE /api/trips/{tripID}/expenses/{expenseID}", authed(s.handleDeleteExpense))
	mux.Handle("GET /api/trips/{tripID}/balance", authed(s.handleBalance))

	mux.Handle("POST /api/trips/{tripID}/summary", authed(s.handleSummary))
	mux.Handle("POST /api/trips/{tripID}/share-whatsapp", authed(s.handleShareWhatsApp))

	return middleware.Metrics(middleware.Logging(middleware.CORS(mux)))
}

// setAuthCookie writes the session token cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookie expires the session token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// memberTrip loads a trip and verifies the caller is a member. It writes the
// appropriate error response and returns nil when the check fails.
func (s *Server) memberTrip(w http.ResponseWriter, r *http.Request, userID string) *models.Trip {
	trip, err := s.store.GetTrip(r.Context(), r.PathValue("tripID"))
	if err != nil {
		respondStoreError(w, err, "Trip not found")
		return nil
	}
	if !trip.IsMember(userID) {
		respondError(w, http.StatusForbidden, "Access denied")
		return nil
	}
	return trip
}
