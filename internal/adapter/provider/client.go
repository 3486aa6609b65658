package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/miservicio/auth-service/internal/core/ports"
)

const requestTimeout = 5 * time.Second

// Client calls the provider-status service. The answer is advisory, so every
// failure path collapses to false instead of propagating.
type Client struct {
	baseURL string
	http    *http.Client
	logger  ports.LoggerPort
}

func NewClient(baseURL string, logger ports.LoggerPort) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

func (c *Client) IsProvider(ctx context.Context, userID int64) bool {
	if c.baseURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/providers/check/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("Failed to build provider check request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Provider check failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Provider check returned non-200", map[string]interface{}{
			"user_id": userID,
			"status":  resp.StatusCode,
		})
		return false
	}

	var body struct {
		IsProvider bool `json:"isProvider"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("Failed to decode provider check response", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return false
	}
	return body.IsProvider
}

var _ ports.ProviderClient = (*Client)(nil)
