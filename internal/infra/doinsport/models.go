package doinsport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type planningResponse struct {
	Members []planningPlayground `json:"hydra:member"`
}

type planningPlayground struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	Indoor     bool               `json:"indoor"`
	Activities []planningActivity `json:"activities"`
}

type planningActivity struct {
	Slots []planningSlot `json:"slots"`
}

type planningSlot struct {
	StartAt string          `json:"startAt"`
	Prices  []planningPrice `json:"prices"`
}

type planningPrice struct {
	// Duration is in seconds on the wire.
	Duration int             `json:"duration"`
	Total    decimal.Decimal `json:"pricePerParticipant"`
}
