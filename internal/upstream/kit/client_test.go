package kit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookhunter/internal/models"
)

func TestSubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/subscribers", r.URL.Path)
		assert.Equal(t, "kit-key", r.Header.Get("X-Kit-Api-Key"))

		var body subscribeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "reader@example.com", body.EmailAddress)
		assert.Equal(t, "active", body.State)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"subscriber":{"id":7,"email_address":"reader@example.com","state":"active"}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second, func() string { return "kit-key" })
	sub, err := client.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"email_address":"reader@example.com","state":"active"}`, string(sub))
}

func TestSubscribe_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":["Email address is invalid"]}`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, time.Second, nil).Subscribe(context.Background(), "x@example.com")
	assert.ErrorIs(t, err, models.ErrConfig)

	_, err = NewClient(srv.URL, time.Second, func() string { return "kit-key" }).Subscribe(context.Background(), "x@example.com")
	require.ErrorIs(t, err, models.ErrUpstream)
	assert.Contains(t, err.Error(), "Email address is invalid")
}
