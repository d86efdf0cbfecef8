package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	log "github.com/sirupsen/logrus"

	"hookhunter/internal/models"
)

// Subscriber adds an email address to the newsletter.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) (json.RawMessage, error)
}

type SubscriptionService struct {
	provider Subscriber
}

func NewSubscriptionService(provider Subscriber) *SubscriptionService {
	return &SubscriptionService{provider: provider}
}

// Subscribe validates the address and forwards it to the provider.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (json.RawMessage, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: %q is not a valid email address", models.ErrInvalidInput, email)
	}

	sub, err := s.provider.Subscribe(ctx, email)
	if err != nil {
		log.WithError(err).Error("error subscribing to newsletter")
		return nil, err
	}
	log.WithField("email_domain", email[strings.LastIndex(email, "@")+1:]).Info("newsletter subscription created")
	return sub, nil
}
