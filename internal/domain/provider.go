package domain

import (
	"context"
	"time"
)

// AvailabilityProvider returns the bookable slots currently open at a
// provider location for one date and time window. indoorOnly nil means no
// indoor/outdoor filtering. Failures are transient from the caller's point
// of view: the cycle is skipped and retried at the next cadence tick.
type AvailabilityProvider interface {
	FetchSlots(ctx context.Context, location LocationQuery) ([]Slot, error)
}

type LocationQuery struct {
	LocationID string
	Date       time.Time
	TimeFrom   string
	TimeTo     string
	IndoorOnly *bool
}
