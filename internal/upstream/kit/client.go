// Package kit talks to the Kit (formerly ConvertKit) v4 subscribers API.
package kit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"hookhunter/internal/models"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	http       *resty.Client
	credential func() string
}

// NewClient builds a client whose API key is looked up on every call.
func NewClient(baseURL string, timeout time.Duration, credential func() string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if credential == nil {
		credential = func() string { return "" }
	}
	return &Client{
		http:       resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		credential: credential,
	}
}

type subscribeRequest struct {
	EmailAddress string `json:"email_address"`
	State        string `json:"state"`
}

type subscribeResponse struct {
	Subscriber json.RawMessage `json:"subscriber"`
}

// Subscribe creates (or reactivates) an active subscriber and returns Kit's
// subscriber object as-is.
func (c *Client) Subscribe(ctx context.Context, email string) (json.RawMessage, error) {
	key := c.credential()
	if key == "" {
		return nil, fmt.Errorf("%w: kit API key is not set", models.ErrConfig)
	}

	var out subscribeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("X-Kit-Api-Key", key).
		SetBody(subscribeRequest{EmailAddress: email, State: "active"}).
		SetResult(&out).
		Post("/v4/subscribers")
	if err != nil {
		return nil, fmt.Errorf("%w: subscribe: %v", models.ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: failed to subscribe: status %d: %s", models.ErrUpstream, resp.StatusCode(), resp.String())
	}
	return out.Subscriber, nil
}
