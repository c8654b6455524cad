package models

// Member roles within a trip. The creator joins as admin, everyone who joins
// via share code becomes a regular member.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Trip represents a group expense-sharing context. Members are embedded in
// the trip rather than referenced, mirroring how trips are always loaded for
// authorization checks.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Goa 2026").
	Name string `json:"name"`

	// Description is an optional free-form note.
	Description string `json:"description,omitempty"`

	// CreatedBy is the user ID of the trip creator.
	CreatedBy string `json:"createdBy"`

	// ShareCode is a short random token that lets a new member join the
	// trip without an invitation. Unique across trips.
	ShareCode string `json:"shareCode"`

	// Members is the list of users belonging to this trip.
	Members []TripMember `json:"members"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64 `json:"updatedAt"`
}

// TripMember records one user's membership in a trip. Email and Name are
// denormalized from the user record at join time so member lists render
// without extra lookups.
type TripMember struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

// Member returns the membership entry for the given user, or nil if the user
// does not belong to the trip.
func (t *Trip) Member(userID string) *TripMember {
	for i := range t.Members {
		if t.Members[i].UserID == userID {
			return &t.Members[i]
		}
	}
	return nil
}

// IsMember reports whether the given user belongs to the trip. Every read or
// mutation of trip data is gated on this check.
func (t *Trip) IsMember(userID string) bool {
	return t.Member(userID) != nil
}

// IsAdmin reports whether the given user is an admin member of the trip.
// Admin status does not grant expense edit rights; see Expense.CanModify.
func (t *Trip) IsAdmin(userID string) bool {
	m := t.Member(userID)
	return m != nil && m.Role == RoleAdmin
}

// MemberName returns the display name for a member user ID, or "Unknown" if
// the user is not (or no longer) a member.
func (t *Trip) MemberName(userID string) string {
	if m := t.Member(userID); m != nil {
		return m.Name
	}
	return "Unknown"
}
