package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agentprompts/backend/pkg/config"

	"go.uber.org/fx"
)

// Client wraps the hosted-checkout provider's REST API and webhook
// verification. It holds no local state; all session state lives with the
// provider.
type Client struct {
	baseURL       string
	accessToken   string
	webhookSecret []byte
	httpClient    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:       cfg.Payments.BaseURL,
		accessToken:   cfg.Payments.AccessToken,
		webhookSecret: []byte(cfg.Payments.WebhookSecret),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckoutSession creates a hosted checkout with the provider and
// returns its redirect URL and ID.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *CreateCheckoutRequest) (*CheckoutSession, error) {
	if req == nil || req.ProductID == "" {
		return nil, fmt.Errorf("%w: missing product id", ErrMalformed)
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkouts", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCheckoutSession fetches the current state of a checkout. Unknown or
// expired IDs surface as ErrNotFound.
func (c *Client) GetCheckoutSession(ctx context.Context, checkoutID string) (*CheckoutSession, error) {
	if checkoutID == "" {
		return nil, fmt.Errorf("%w: missing checkout id", ErrMalformed)
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodGet, "/v1/checkouts/"+checkoutID, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// VerifyWebhook authenticates a webhook delivery and parses it. The signature
// covers the exact raw body bytes. Returns ErrSignatureInvalid on any
// authentication failure and ErrMalformed when an authenticated body does not
// parse.
func (c *Client) VerifyWebhook(rawBody []byte, headers http.Header) (*Event, error) {
	if err := verifySignature(c.webhookSecret, headers, rawBody); err != nil {
		return nil, err
	}

	var ev Event
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrMalformed)
	}
	return &ev, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode >= 400:
		// Drain a little of the body for the log line; never forward it.
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, res.StatusCode, detail)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(NewClient),
)
