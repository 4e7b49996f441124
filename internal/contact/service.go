// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/ntandostore/internal/core"
	"github.com/carterperez-dev/ntandostore/internal/notify"
	"github.com/carterperez-dev/ntandostore/internal/validate"
)

type SubscribeOutcome string

const (
	OutcomeSubscribed        SubscribeOutcome = "subscribed"
	OutcomeResubscribed      SubscribeOutcome = "resubscribed"
	OutcomeAlreadySubscribed SubscribeOutcome = "already_subscribed"
)

type Notifier interface {
	Notify(ctx context.Context, event notify.Event) bool
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// SubmitMessage stores the contact message and announces it. The
// notification is advisory; the stored message is the source of truth.
func (s *Service) SubmitMessage(
	ctx context.Context,
	req SubmitMessageRequest,
) (*Message, error) {
	name := validate.Sanitize(req.Name)
	if name == "" {
		return nil, core.ValidationError("name is required")
	}

	email := validate.Sanitize(req.Email)
	if !validate.Email(email) {
		return nil, core.ValidationError("invalid email address")
	}

	body := validate.Sanitize(req.Message)
	if body == "" {
		return nil, core.ValidationError("message is required")
	}

	message := &Message{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Service: validate.Sanitize(req.Service),
		Body:    body,
		Status:  MessageStatusNew,
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("submit contact message: %w", err)
	}

	s.dispatchContactSubmitted(ctx, message)
	return message, nil
}

// Subscribe is idempotent: an active subscriber is a no-op, an inactive one
// is reactivated, anyone else is added.
func (s *Service) Subscribe(
	ctx context.Context,
	email string,
) (SubscribeOutcome, error) {
	email = strings.ToLower(validate.Sanitize(email))
	if !validate.Email(email) {
		return "", core.ValidationError("invalid email address")
	}

	existing, err := s.repo.GetSubscriberByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsActive {
			return OutcomeAlreadySubscribed, nil
		}
		if err := s.repo.ReactivateSubscriber(ctx, existing.ID); err != nil {
			return "", fmt.Errorf("subscribe: %w", err)
		}
		return OutcomeResubscribed, nil

	case errors.Is(err, core.ErrNotFound):
		subscriber := &Subscriber{
			ID:    uuid.New().String(),
			Email: email,
		}
		err := s.repo.CreateSubscriber(ctx, subscriber)
		if errors.Is(err, core.ErrDuplicateKey) {
			// A concurrent subscribe won; treat it as already subscribed.
			return OutcomeAlreadySubscribed, nil
		}
		if err != nil {
			return "", fmt.Errorf("subscribe: %w", err)
		}
		return OutcomeSubscribed, nil

	default:
		return "", fmt.Errorf("subscribe: %w", err)
	}
}

func (s *Service) dispatchContactSubmitted(ctx context.Context, message *Message) {
	event := notify.Event{
		Kind:          notify.KindContactSubmitted,
		Service:       "Contact Form",
		Amount:        "0.00",
		CustomerName:  message.Name,
		CustomerEmail: message.Email,
		Details:       message.Body,
	}

	go func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification panic", "panic", r)
			}
		}()
		s.notifier.Notify(ctx, event)
	}(context.WithoutCancel(ctx))
}
