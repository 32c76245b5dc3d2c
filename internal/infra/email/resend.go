package email

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

// Client sends slot notification emails through the Resend API.
type Client struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL, apiKey, from string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *Client) SendSlotEmail(ctx context.Context, to, name string, n domain.SlotNotification) error {
	subject := fmt.Sprintf("Nouveau créneau disponible à %s", n.ClubName)

	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    renderSlotHTML(name, n),
	})
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("resend: status %d", response.StatusCode)
	}

	c.logger.Debug("slot email sent", zap.String("to", to), zap.String("club", n.ClubName))
	return nil
}

func renderSlotHTML(name string, n domain.SlotNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Bonjour %s,</p>", name)
	fmt.Fprintf(&b, "<p>Un créneau vient de se libérer à <strong>%s</strong> :</p>", n.ClubName)
	fmt.Fprintf(&b, "<ul><li>%s</li><li>%s à %s</li><li>%d minutes — %s €</li></ul>",
		n.Slot.PlaygroundName,
		n.Slot.Date.Format("02/01/2006"),
		n.Slot.StartTime,
		n.Slot.DurationMinutes,
		n.Slot.PriceTotal.StringFixed(2),
	)
	if n.BookingURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Réserver maintenant</a></p>`, n.BookingURL)
	}
	b.WriteString("<p>À vite,<br/>L'équipe Krenoo</p>")
	return b.String()
}
