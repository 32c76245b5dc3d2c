package domain

import (
	"context"

	"github.com/google/uuid"
)

// SlotNotification is the rendered context shared by both channels.
type SlotNotification struct {
	ClubName   string
	Slot       Slot
	AlertID    uuid.UUID
	BookingURL string // empty when the club has no slug
}

// EmailSender delivers one slot notification email. Best effort; a failure
// never aborts the cycle.
type EmailSender interface {
	SendSlotEmail(ctx context.Context, to, name string, n SlotNotification) error
}

// PushSender delivers one slot notification to a single device token.
type PushSender interface {
	SendSlotPush(ctx context.Context, token string, n SlotNotification) error
}

// IdentityResolver looks up the contact identity of an alert owner.
// Constructed once at startup and injected; there is no process-global
// client.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*Contact, error)
}
