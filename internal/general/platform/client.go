package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"transit-admin/internal/domain/booking"
	"transit-admin/internal/domain/commuter"
	"transit-admin/internal/domain/driver"
	"transit-admin/internal/domain/fare"
	"transit-admin/internal/general/config"
	"transit-admin/internal/general/logger"
	"transit-admin/internal/ports"
)

// Client talks to the platform's backend services over HTTP. The backend
// is untrusted: collection endpoints answer either a bare JSON array or a
// {status,data} envelope, and both shapes are accepted transparently.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

// NewClient builds a platform gateway with a bounded per-call timeout.
func NewClient(cfg *config.Config, logger *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Platform.BaseURL, "/"),
		client:  &http.Client{Timeout: time.Duration(cfg.Platform.TimeoutSeconds) * time.Second},
		logger:  logger,
	}
}

// ensure Client implements the PlatformGateway port
var _ ports.PlatformGateway = (*Client)(nil)

// ----- collection fetches -----

func (c *Client) Commuters(ctx context.Context) ([]commuter.Commuter, error) {
	return fetchList[commuter.Commuter](ctx, c, "/commuters")
}

func (c *Client) Drivers(ctx context.Context) ([]driver.Driver, error) {
	return fetchList[driver.Driver](ctx, c, "/drivers")
}

func (c *Client) Applications(ctx context.Context) ([]driver.Application, error) {
	return fetchList[driver.Application](ctx, c, "/applications")
}

func (c *Client) Subscriptions(ctx context.Context) ([]driver.Subscription, error) {
	return fetchList[driver.Subscription](ctx, c, "/subscriptions")
}

func (c *Client) Violations(ctx context.Context) ([]driver.Violation, error) {
	return fetchList[driver.Violation](ctx, c, "/violations")
}

func (c *Client) Ratings(ctx context.Context) ([]driver.Rating, error) {
	return fetchList[driver.Rating](ctx, c, "/ratings")
}

func (c *Client) Fares(ctx context.Context) ([]fare.Fare, error) {
	return fetchList[fare.Fare](ctx, c, "/fares")
}

func (c *Client) Cancellations(ctx context.Context) ([]booking.Cancellation, error) {
	return fetchList[booking.Cancellation](ctx, c, "/cancellations")
}

func (c *Client) Bookings(ctx context.Context) ([]booking.Booking, error) {
	return fetchList[booking.Booking](ctx, c, "/bookings")
}

// ----- operator actions -----

// ApproveApplication confirms a driver application on the platform.
func (c *Client) ApproveApplication(ctx context.Context, applicationID string) error {
	return c.postAction(ctx, "/applications/approve", map[string]string{"id": applicationID})
}

// AcceptPayment confirms a subscription payment on the platform.
func (c *Client) AcceptPayment(ctx context.Context, subscriptionID string) error {
	return c.postAction(ctx, "/subscriptions/payment", map[string]string{"id": subscriptionID})
}

// UpdateFare pushes edited fare settings to the platform.
func (c *Client) UpdateFare(ctx context.Context, fareID string, update fare.Update) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("platform: encode fare update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/fares/"+fareID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("platform: build fare update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doAction(req)
}

// ----- internals -----

// envelope is the {status,data} wrapper some platform endpoints use.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// fetchList GETs a collection and decodes either response shape into a
// typed slice. A non-2xx status, transport failure, or non-"ok" envelope
// status is an error; callers recover it into an empty, error-flagged
// dataset rather than failing the screen.
func fetchList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("platform: build request %s: %w", path, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform: fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("platform: fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("platform: read %s: %w", path, err)
	}

	payload := bytes.TrimSpace(raw)
	if len(payload) == 0 {
		return nil, nil
	}

	// bare array shape
	if payload[0] == '[' {
		var out []T
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, fmt.Errorf("platform: decode %s: %w", path, err)
		}
		return out, nil
	}

	// {status,data} envelope shape
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("platform: decode %s envelope: %w", path, err)
	}
	if !strings.EqualFold(env.Status, "ok") {
		return nil, fmt.Errorf("platform: %s answered status %q", path, env.Status)
	}

	var out []T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return nil, fmt.Errorf("platform: decode %s data: %w", path, err)
		}
	}
	return out, nil
}

// postAction POSTs an id payload to an action endpoint.
func (c *Client) postAction(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("platform: encode action %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("platform: build action request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doAction(req)
}

// doAction executes a mutating request; anything but 2xx is a failure the
// caller must surface to the operator. Local state is never mutated before
// this returns nil.
func (c *Client) doAction(req *http.Request) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("platform: action %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("platform: action %s: unexpected status %d", req.URL.Path, resp.StatusCode)
	}
	return nil
}
