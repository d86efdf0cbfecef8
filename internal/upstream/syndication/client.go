// Package syndication fetches single tweets from the public embed endpoint
// used by tweet widgets.
package syndication

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"hookhunter/internal/models"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout)}
}

// FetchTweet returns the raw tweet payload for id. Missing, deleted, and
// withheld tweets are reported as models.ErrNotFound.
func (c *Client) FetchTweet(ctx context.Context, id string) (json.RawMessage, error) {
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: tweet id %q is not numeric", models.ErrInvalidInput, id)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id":    id,
			"lang":  "en",
			"token": Token(id),
		}).
		SetHeader("Accept", "application/json").
		Get("/tweet-result")
	if err != nil {
		return nil, fmt.Errorf("%w: tweet %s: %v", models.ErrUpstream, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: tweet %s", models.ErrNotFound, id)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: tweet %s returned status %d", models.ErrUpstream, id, resp.StatusCode())
	}

	body := resp.Body()
	var probe struct {
		Typename string `json:"__typename"`
		IDStr    string `json:"id_str"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: decode tweet %s: %v", models.ErrUpstream, id, err)
	}
	if probe.Typename == "TweetTombstone" || (probe.Typename == "" && probe.IDStr == "") {
		return nil, fmt.Errorf("%w: tweet %s", models.ErrNotFound, id)
	}
	return json.RawMessage(body), nil
}

// Token derives the widget token for a tweet id: (id / 1e15 * pi) written in
// base 36 with every '0' and the radix point removed.
func Token(id string) string {
	n, err := strconv.ParseFloat(id, 64)
	if err != nil {
		return ""
	}
	v := n / 1e15 * math.Pi
	whole := math.Floor(v)
	frac := v - whole

	var b strings.Builder
	b.WriteString(strconv.FormatInt(int64(whole), 36))
	// float64 carries about 11 base-36 digits after the point.
	for i := 0; i < 11 && frac > 0; i++ {
		frac *= 36
		digit := int64(frac)
		b.WriteString(strconv.FormatInt(digit, 36))
		frac -= float64(digit)
	}
	return strings.ReplaceAll(b.String(), "0", "")
}
