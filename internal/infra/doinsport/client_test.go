package doinsport

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestMapSlotsFiltersAndNormalizes(t *testing.T) {
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	indoorCourt := planningPlayground{
		ID:     uuid.New(),
		Name:   "Court A",
		Indoor: true,
		Activities: []planningActivity{{
			Slots: []planningSlot{
				{StartAt: "18:30:00", Prices: []planningPrice{{Duration: 3600, Total: decimal.RequireFromString("30.00")}}},
				{StartAt: "21:00:00", Prices: []planningPrice{{Duration: 3600, Total: decimal.RequireFromString("30.00")}}}, // outside window
				{StartAt: "19:00:00", Prices: nil}, // no bookable option
			},
		}},
	}
	outdoorCourt := planningPlayground{
		ID:     uuid.New(),
		Name:   "Court B",
		Indoor: false,
		Activities: []planningActivity{{
			Slots: []planningSlot{
				{StartAt: "18:00:00", Prices: []planningPrice{{Duration: 5400, Total: decimal.RequireFromString("45.00")}}},
			},
		}},
	}

	payload := planningResponse{Members: []planningPlayground{indoorCourt, outdoorCourt}}

	query := domain.LocationQuery{
		Date:     date,
		TimeFrom: "18:00",
		TimeTo:   "20:00",
	}

	slots := mapSlots(payload, query)
	require.Len(t, slots, 2)
	assert.Equal(t, "18:30", slots[0].StartTime)
	assert.Equal(t, 60, slots[0].DurationMinutes)
	assert.Equal(t, "Court B", slots[1].PlaygroundName)
	assert.Equal(t, 90, slots[1].DurationMinutes)

	query.IndoorOnly = boolPtr(true)
	slots = mapSlots(payload, query)
	require.Len(t, slots, 1)
	assert.Equal(t, "Court A", slots[0].PlaygroundName)
	assert.True(t, slots[0].Indoor)

	query.IndoorOnly = boolPtr(false)
	slots = mapSlots(payload, query)
	require.Len(t, slots, 1)
	assert.Equal(t, "Court B", slots[0].PlaygroundName)
}
