package domain

import (
	"time"

	"github.com/google/uuid"
)

// Club maps an internal club record to its provider-facing location.
type Club struct {
	ID          uuid.UUID
	DoinsportID uuid.UUID
	Name        string
	Slug        string
	City        string
	Enabled     bool
	CreatedAt   time.Time
}

// PushToken is one registered device endpoint for a user.
type PushToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Token      string
	DeviceType string
	Active     bool
	CreatedAt  time.Time
}

// Contact is the resolved notification identity of an alert owner.
type Contact struct {
	Email string
	Name  string
}
