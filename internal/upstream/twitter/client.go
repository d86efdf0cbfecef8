// Package twitter is a client for X's web GraphQL SearchTimeline endpoint.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"hookhunter/internal/models"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRetryWait = 500 * time.Millisecond
	maxRetryWait     = 5 * time.Second
)

// features are the GraphQL feature switches the web client sends with SearchTimeline.
var features = map[string]bool{
	"rweb_tipjar_consumption_enabled":                                         true,
	"responsive_web_graphql_exclude_directive_enabled":                        true,
	"verified_phone_label_enabled":                                            false,
	"creator_subscriptions_tweet_preview_api_enabled":                         true,
	"responsive_web_graphql_timeline_navigation_enabled":                      true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
	"communities_web_enable_tweet_community_results_fetch":                    true,
	"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
	"articles_preview_enabled":                                                true,
	"tweetypie_unmention_optimization_enabled":                                true,
	"responsive_web_edit_tweet_api_enabled":                                   true,
	"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
	"view_counts_everywhere_api_enabled":                                      true,
	"longform_notetweets_consumption_enabled":                                 true,
	"responsive_web_twitter_article_tweet_consumption_enabled":                true,
	"tweet_awards_web_tipping_enabled":                                        false,
	"creator_subscriptions_quote_tweet_preview_enabled":                       false,
	"freedom_of_speech_not_reach_fetch_enabled":                               true,
	"standardized_nudges_misinfo":                                             true,
	"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
	"rweb_video_timestamps_enabled":                                           true,
	"longform_notetweets_rich_text_read_enabled":                              true,
	"longform_notetweets_inline_media_enabled":                                true,
	"responsive_web_enhance_cards_enabled":                                    false,
}

// Options configures the Client.
type Options struct {
	BaseURL     string
	QueryID     string
	BearerToken string
	Timeout     time.Duration
	RetryCount  int

	// Credential is called on every request so a key added or removed at
	// runtime takes effect without a restart.
	Credential func() string
}

// Client issues SearchTimeline requests, one page per call.
type Client struct {
	http *resty.Client
	opts Options
}

func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Credential == nil {
		o.Credential = func() string { return "" }
	}
	rc := resty.New().
		SetBaseURL(o.BaseURL).
		SetTimeout(o.Timeout).
		SetRetryCount(o.RetryCount).
		SetRetryWaitTime(defaultRetryWait).
		SetRetryMaxWaitTime(maxRetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	return &Client{http: rc, opts: o}
}

type searchVariables struct {
	RawQuery    string `json:"rawQuery"`
	Count       int    `json:"count"`
	Cursor      string `json:"cursor,omitempty"`
	QuerySource string `json:"querySource"`
	Product     string `json:"product"`
}

// SearchTweets fetches one page of up to count posts. An empty cursor asks for
// the first page.
func (c *Client) SearchTweets(ctx context.Context, filter models.TweetFilter, count int, cursor string, ranking models.RankingHint) (*models.TweetPage, error) {
	sess, err := parseAPIKey(c.opts.Credential())
	if err != nil {
		return nil, err
	}

	rawQuery := BuildRawQuery(filter)
	variables, err := json.Marshal(searchVariables{
		RawQuery:    rawQuery,
		Count:       count,
		Cursor:      cursor,
		QuerySource: "typed_query",
		Product:     product(ranking),
	})
	if err != nil {
		return nil, fmt.Errorf("encode search variables: %w", err)
	}
	feats, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("encode search features: %w", err)
	}

	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Authorization":             "Bearer " + c.opts.BearerToken,
			"Cookie":                    sess.cookie,
			"X-Csrf-Token":              sess.csrf,
			"X-Twitter-Active-User":     "yes",
			"X-Twitter-Auth-Type":       "OAuth2Session",
			"X-Twitter-Client-Language": "en",
			"Accept":                    "application/json",
		}).
		SetQueryParam("variables", string(variables)).
		SetQueryParam("features", string(feats)).
		SetResult(&out).
		Get("/" + c.opts.QueryID + "/SearchTimeline")
	if err != nil {
		return nil, fmt.Errorf("%w: search timeline: %v", models.ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: search timeline returned status %d: %s", models.ErrUpstream, resp.StatusCode(), truncate(resp.String(), 256))
	}

	page, err := out.toPage()
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"query":  rawQuery,
		"posts":  len(page.Posts),
		"cursor": cursor != "",
	}).Debug("twitter search page fetched")
	return page, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
