package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Slot is one bookable unit as returned by the availability provider.
type Slot struct {
	PlaygroundID    uuid.UUID
	PlaygroundName  string
	Date            time.Time // date only, UTC midnight
	StartTime       string    // "HH:MM"
	DurationMinutes int
	PriceTotal      decimal.Decimal
	Indoor          bool
}

// DetectedSlot is a slot previously observed for an alert. Its presence in
// the ledger is the dedup guard: a slot is notified at most once, when the
// row is first created.
type DetectedSlot struct {
	ID      uuid.UUID
	AlertID uuid.UUID
	ClubID  uuid.UUID

	PlaygroundID    uuid.UUID
	PlaygroundName  string
	Date            time.Time
	StartTime       string
	DurationMinutes int
	PriceTotal      decimal.Decimal
	Indoor          bool

	EmailSent   bool
	EmailSentAt *time.Time
	PushSent    bool
	PushSentAt  *time.Time

	DetectedAt time.Time
}

// NotificationChannel identifies which delivery channel a send outcome
// belongs to.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelPush  NotificationChannel = "push"
)
