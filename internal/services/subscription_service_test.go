package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hookhunter/internal/models"
	"hookhunter/internal/services"
)

type mockSubscriber struct {
	mock.Mock
}

func (m *mockSubscriber) Subscribe(ctx context.Context, email string) (json.RawMessage, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	ms := new(mockSubscriber)
	ms.On("Subscribe", mock.Anything, "a@example.com").
		Return(json.RawMessage(`{"subscriber":{"id":1}}`), nil).Once()

	got, err := services.NewSubscriptionService(ms).Subscribe(context.Background(), "  a@example.com ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"subscriber":{"id":1}}`, string(got))
	ms.AssertExpectations(t)
}

func TestSubscriptionService_InvalidEmail(t *testing.T) {
	ms := new(mockSubscriber)
	svc := services.NewSubscriptionService(ms)

	for _, email := range []string{"", "   ", "not-an-email", "Name <a@example.com>"} {
		_, err := svc.Subscribe(context.Background(), email)
		assert.ErrorIs(t, err, models.ErrInvalidInput, email)
	}
	ms.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}

func TestSubscriptionService_ProviderError(t *testing.T) {
	ms := new(mockSubscriber)
	ms.On("Subscribe", mock.Anything, "a@example.com").Return(nil, errors.New("boom")).Once()

	_, err := services.NewSubscriptionService(ms).Subscribe(context.Background(), "a@example.com")
	assert.EqualError(t, err, "boom")
}
