package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/krenoo/slotwatch/internal/domain"
	"go.uber.org/zap"
)

const tokenPrefix = "ExponentPushToken"

// Client sends push notifications through the Expo push gateway.
type Client struct {
	pushURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(pushURL string, logger *zap.Logger) *Client {
	return &Client{
		pushURL: pushURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type pushMessage struct {
	To        string                 `json:"to"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Sound     string                 `json:"sound"`
	Badge     int                    `json:"badge"`
	Priority  string                 `json:"priority"`
	ChannelID string                 `json:"channelId"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type pushResponse struct {
	Data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// ValidToken reports whether the token looks like an Expo push token.
// Anything else is skipped silently: stale tokens from uninstalled apps are
// routine, not errors.
func ValidToken(token string) bool {
	return strings.HasPrefix(token, tokenPrefix)
}

func (c *Client) SendSlotPush(ctx context.Context, token string, n domain.SlotNotification) error {
	if !ValidToken(token) {
		c.logger.Warn("skipping invalid push token", zap.String("token_prefix", prefixOf(token)))
		return fmt.Errorf("expo: invalid token")
	}

	data := map[string]interface{}{
		"type":    "slot_alert",
		"alertId": n.AlertID.String(),
	}
	if n.BookingURL != "" {
		data["bookingUrl"] = n.BookingURL
	}

	message := pushMessage{
		To:        token,
		Title:     "Nouveau créneau disponible !",
		Body:      fmt.Sprintf("%s — %s le %s à %s", n.ClubName, n.Slot.PlaygroundName, n.Slot.Date.Format("02/01"), n.Slot.StartTime),
		Sound:     "default",
		Badge:     1,
		Priority:  "high",
		ChannelID: "default",
		Data:      data,
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("expo: status %d", response.StatusCode)
	}

	var payload pushResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return err
	}
	if payload.Data.Status != "ok" {
		return fmt.Errorf("expo: %s", payload.Data.Message)
	}
	return nil
}

func prefixOf(token string) string {
	if len(token) > 12 {
		return token[:12]
	}
	return token
}
