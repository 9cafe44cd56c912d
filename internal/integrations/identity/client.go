package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client клиент внешнего провайдера идентификации
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Verify отдаёт токен провайдеру и получает пользователя
func (c *Client) Verify(ctx context.Context, token string) (*Identity, error) {
	url := c.baseURL + "/auth/v1/user"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Identity provider request failed: %v", err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("Identity provider returned status=%d", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	id, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q", ErrInvalidResponse, user.ID)
	}

	return &Identity{ID: id, Email: user.Email}, nil
}
