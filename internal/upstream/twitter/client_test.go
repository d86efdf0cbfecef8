package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookhunter/internal/models"
)

const testCookies = "auth_token=abc;ct0=csrf123"

func newTestClient(t *testing.T, handler http.HandlerFunc, credential string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		BaseURL:     srv.URL,
		QueryID:     "QID",
		BearerToken: "bearer-token",
		Timeout:     2 * time.Second,
		Credential:  func() string { return credential },
	})
}

func TestSearchTweets_ParsesPage(t *testing.T) {
	fixture, err := os.ReadFile("testdata/search_page.json")
	require.NoError(t, err)

	var gotVars searchVariables
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/QID/SearchTimeline", r.URL.Path)
		assert.Equal(t, "Bearer bearer-token", r.Header.Get("Authorization"))
		assert.Equal(t, "csrf123", r.Header.Get("X-Csrf-Token"))
		assert.Equal(t, testCookies, r.Header.Get("Cookie"))
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("variables")), &gotVars))
		assert.NotEmpty(t, r.URL.Query().Get("features"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}, testCookies)

	filter := models.TweetFilter{ListID: "42", MinLikes: 10}
	page, err := client.SearchTweets(context.Background(), filter, 20, "CURSOR-IN", models.RankingLatest)
	require.NoError(t, err)

	assert.Equal(t, "list:42 min_faves:10 -filter:replies", gotVars.RawQuery)
	assert.Equal(t, 20, gotVars.Count)
	assert.Equal(t, "CURSOR-IN", gotVars.Cursor)
	assert.Equal(t, "Latest", gotVars.Product)

	require.Len(t, page.Posts, 2, "tombstones are skipped")
	assert.Equal(t, "BOTTOM-CURSOR", page.Next)

	first := page.Posts[0]
	assert.Equal(t, "1800000000000000001", first.ID)
	assert.Equal(t, "alice", first.AuthorHandle)
	assert.Equal(t, "Alice", first.AuthorName)
	assert.Equal(t, 420, first.LikeCount)
	assert.Equal(t, 37, first.RetweetCount)
	assert.Equal(t, 12, first.ReplyCount)
	assert.Equal(t, 3, first.QuoteCount)
	assert.Equal(t, 15800, first.ViewCount)
	assert.Equal(t, time.Date(2024, 6, 12, 8, 30, 0, 0, time.UTC), first.CreatedAt)
	assert.Equal(t, "https://x.com/alice/status/1800000000000000001", first.URL)

	second := page.Posts[1]
	assert.Equal(t, "bob", second.AuthorHandle)
	assert.Equal(t, "A much longer note tweet. With two sentences.", second.Text)
	assert.Equal(t, 90, second.ViewCount)
}

func TestSearchTweets_FirstPageOmitsCursor(t *testing.T) {
	var raw map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("variables")), &raw))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}, testCookies)

	page, err := client.SearchTweets(context.Background(), models.TweetFilter{ListID: "1"}, 20, "", models.RankingTop)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Empty(t, page.Next)
	_, hasCursor := raw["cursor"]
	assert.False(t, hasCursor)
	assert.Equal(t, "Top", raw["product"])
}

func TestSearchTweets_MissingCredential(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	_, err := client.SearchTweets(context.Background(), models.TweetFilter{ListID: "1"}, 20, "", models.RankingTop)
	assert.ErrorIs(t, err, models.ErrConfig)
	assert.False(t, called, "no request is sent without a credential")
}

func TestSearchTweets_UpstreamRejects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"code":32,"message":"Could not authenticate you."}]}`))
	}, testCookies)

	_, err := client.SearchTweets(context.Background(), models.TweetFilter{ListID: "1"}, 20, "", models.RankingTop)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.Contains(t, err.Error(), "401")
}

func TestSearchTweets_GraphQLErrorWithoutData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"code":88,"message":"Rate limit exceeded"}]}`))
	}, testCookies)

	_, err := client.SearchTweets(context.Background(), models.TweetFilter{ListID: "1"}, 20, "", models.RankingTop)
	assert.ErrorIs(t, err, models.ErrUpstream)
}

func TestSearchTweets_RetriesServerErrors(t *testing.T) {
	fixture, err := os.ReadFile("testdata/search_page.json")
	require.NoError(t, err)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		BaseURL:    srv.URL,
		QueryID:    "QID",
		RetryCount: 1,
		Credential: func() string { return testCookies },
	})
	client.http.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(time.Millisecond)

	page, err := client.SearchTweets(context.Background(), models.TweetFilter{ListID: "1"}, 20, "", models.RankingTop)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.Equal(t, 2, calls)
}
