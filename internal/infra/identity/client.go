package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/krenoo/slotwatch/internal/domain"
	"go.uber.org/zap"
)

// Client resolves a user's contact identity against the Supabase admin API.
// One instance is built at startup and shared; it holds no mutable state.
type Client struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, serviceKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type adminUserResponse struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func (c *Client) Resolve(ctx context.Context, userID uuid.UUID) (*domain.Contact, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users/%s", c.baseURL, userID)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+c.serviceKey)
	request.Header.Set("apikey", c.serviceKey)

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("identity: status %d", response.StatusCode)
	}

	var payload adminUserResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, domain.ErrNotFound
	}

	name := payload.UserMetadata.Name
	if name == "" {
		name = payload.Email[:strings.Index(payload.Email+"@", "@")]
	}
	return &domain.Contact{Email: payload.Email, Name: name}, nil
}
