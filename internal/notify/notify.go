// Package notify pushes best-effort change notifications from a CLI process
// to a locally running server. Failures are swallowed: the server being down
// is the normal case, not an error.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkxr/tkxr/internal/domain"
)

// DefaultTimeout bounds each notification attempt.
const DefaultTimeout = 1 * time.Second

// Client implements tracker.Notifier against the server's
// /api/cli-notifications endpoints.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a notification client for the given server base URL,
// e.g. "http://localhost:8080".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  logger,
	}
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			c.logger.Debug("notification encode failed", "endpoint", endpoint, "error", err)
			return
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		c.logger.Debug("notification request failed", "endpoint", endpoint, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// Server not running: silently drop.
		c.logger.Debug("notification failed", "endpoint", endpoint, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Debug("notification rejected", "endpoint", endpoint, "status", resp.StatusCode)
	}
}

func (c *Client) TicketCreated(ctx context.Context, ticket *domain.Ticket) {
	c.post(ctx, "/api/cli-notifications/ticket-created", ticket)
}

func (c *Client) TicketUpdated(ctx context.Context, ticket *domain.Ticket) {
	c.post(ctx, "/api/cli-notifications/ticket-updated", ticket)
}

func (c *Client) TicketDeleted(ctx context.Context, id string) {
	c.post(ctx, "/api/cli-notifications/ticket-deleted", map[string]string{"id": id})
}

func (c *Client) SprintCreated(ctx context.Context, sprint *domain.Sprint) {
	c.post(ctx, "/api/cli-notifications/sprint-created", sprint)
}

func (c *Client) SprintUpdated(ctx context.Context, sprint *domain.Sprint) {
	c.post(ctx, "/api/cli-notifications/sprint-updated", sprint)
}

func (c *Client) UserCreated(ctx context.Context, user *domain.User) {
	c.post(ctx, "/api/cli-notifications/user-created", user)
}
