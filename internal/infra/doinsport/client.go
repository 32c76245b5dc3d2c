package doinsport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/krenoo/slotwatch/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client fetches bookable slots from the Doinsport planning API. All alert
// cycles share one client, so the limiter bounds the total request rate the
// worker puts on the provider.
type Client struct {
	baseURL    string
	activityID string
	client     *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(baseURL, activityID string, timeout time.Duration, rps float64, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		activityID: activityID,
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

func (c *Client) FetchSlots(ctx context.Context, q domain.LocationQuery) ([]domain.Slot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	day := q.Date.Format("2006-01-02")
	endpoint := fmt.Sprintf("%s/clubs/playgrounds/plannings/%s", c.baseURL, day)

	params := url.Values{}
	params.Set("club.id", q.LocationID)
	params.Set("from", q.TimeFrom)
	params.Set("to", q.TimeTo)
	params.Set("activities.id", c.activityID)
	params.Set("bookingType", "unique")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/ld+json")

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Error("planning request failed", zap.String("club", q.LocationID), zap.String("date", day), zap.Error(err))
		return nil, err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"planning request complete",
		zap.String("club", q.LocationID),
		zap.String("date", day),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("doinsport: status %d", response.StatusCode)
	}

	var payload planningResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return mapSlots(payload, q), nil
}

func mapSlots(payload planningResponse, q domain.LocationQuery) []domain.Slot {
	var slots []domain.Slot
	for _, playground := range payload.Members {
		if q.IndoorOnly != nil && playground.Indoor != *q.IndoorOnly {
			continue
		}
		for _, activity := range playground.Activities {
			for _, raw := range activity.Slots {
				if len(raw.Prices) == 0 {
					continue
				}
				startTime := normalizeClock(raw.StartAt)
				if startTime < q.TimeFrom || startTime > q.TimeTo {
					continue
				}
				// A slot can carry several duration options; the first one
				// is the club's default offer and is what users see.
				price := raw.Prices[0]
				slots = append(slots, domain.Slot{
					PlaygroundID:    playground.ID,
					PlaygroundName:  playground.Name,
					Date:            q.Date,
					StartTime:       startTime,
					DurationMinutes: price.Duration / 60,
					PriceTotal:      price.Total,
					Indoor:          playground.Indoor,
				})
			}
		}
	}
	return slots
}

// normalizeClock trims "HH:MM:SS" planning times down to "HH:MM".
func normalizeClock(clock string) string {
	if len(clock) > 5 {
		return clock[:5]
	}
	return clock
}
