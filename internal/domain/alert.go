package domain

import (
	"time"

	"github.com/google/uuid"
)

// Alert is a user's standing request to be notified when a bookable slot
// matching its criteria appears at a club.
type Alert struct {
	ID     uuid.UUID
	UserID uuid.UUID
	ClubID uuid.UUID

	TargetDate time.Time
	TimeFrom   string // "HH:MM"
	TimeTo     string // "HH:MM"
	IndoorOnly *bool  // nil = either

	Active               bool
	CheckIntervalMinutes int
	BaselineDone         bool
	LastCheckedAt        *time.Time

	// Boost fields are written by the boost purchase flow; the worker only
	// reads them and clears them once expired.
	BoostActive    bool
	BoostExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Boosted reports whether the alert has a boost window covering now.
// Expiry is authoritative even if the flags have not been cleared yet.
func (a Alert) Boosted(now time.Time) bool {
	return a.BoostActive && a.BoostExpiresAt != nil && a.BoostExpiresAt.After(now)
}
