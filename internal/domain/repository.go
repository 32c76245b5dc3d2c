package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlot = errors.New("detected slot already exists")
)

// AlertRepository is the alert store. All mutating methods write only the
// fields they name; the boost purchase flow edits the same rows
// concurrently, so full-record overwrites are never used.
type AlertRepository interface {
	// ListActive returns alerts with active=true and target_date >= asOf.
	ListActive(ctx context.Context, asOf time.Time) ([]Alert, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)

	MarkChecked(ctx context.Context, id uuid.UUID, at time.Time) error
	EstablishBaseline(ctx context.Context, id uuid.UUID) error
	// Deactivate clears active and any boost flags in one write.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// ExpireBoosts clears boost flags on alerts whose boost window has
	// ended. Returns the number of alerts touched.
	ExpireBoosts(ctx context.Context, now time.Time) (int64, error)
	// DeactivateExpired deactivates alerts whose target date is before the
	// given date, clearing boost flags as well.
	DeactivateExpired(ctx context.Context, before time.Time) (int64, error)
}

// SlotLedger is the durable record of slots already seen per alert. The
// composite key (alert, playground, date, start time) is unique.
type SlotLedger interface {
	Exists(ctx context.Context, alertID, playgroundID uuid.UUID, date time.Time, startTime string) (bool, error)
	Insert(ctx context.Context, slot *DetectedSlot) error
	MarkNotified(ctx context.Context, id uuid.UUID, channel NotificationChannel, at time.Time) error
	// DeleteOlderThan prunes rows whose slot date (not detection date) is
	// before the given date. Returns the number of rows removed.
	DeleteOlderThan(ctx context.Context, date time.Time) (int64, error)
}

type ClubRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Club, error)
}

type PushTokenRepository interface {
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]PushToken, error)
}
