package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
)

// SlotClassifier splits a fetched slot set into known and new against the
// durable ledger. Lookups go per slot to the ledger rather than to any
// in-memory baseline: the ledger is the source of truth across restarts.
type SlotClassifier struct {
	ledger domain.SlotLedger
}

func NewSlotClassifier(ledger domain.SlotLedger) *SlotClassifier {
	return &SlotClassifier{ledger: ledger}
}

// Classify returns the slots not yet present in the ledger for this alert.
// Only the key tuple (playground, date, start time) governs novelty; a
// price or duration change on a known slot does not make it new again.
func (c *SlotClassifier) Classify(ctx context.Context, alertID uuid.UUID, fetched []domain.Slot) ([]domain.Slot, error) {
	var fresh []domain.Slot
	for _, slot := range fetched {
		known, err := c.ledger.Exists(ctx, alertID, slot.PlaygroundID, slot.Date, slot.StartTime)
		if err != nil {
			return nil, err
		}
		if !known {
			fresh = append(fresh, slot)
		}
	}
	return fresh, nil
}
