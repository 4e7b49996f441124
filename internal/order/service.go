// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/ntandostore/internal/catalog"
	"github.com/carterperez-dev/ntandostore/internal/core"
	"github.com/carterperez-dev/ntandostore/internal/notify"
	"github.com/carterperez-dev/ntandostore/internal/validate"
)

// Tracking-number collisions are vanishingly rare, so a handful of retries
// is already generous. Exhausting them surfaces as a conflict.
const maxTrackingAttempts = 5

type Notifier interface {
	Notify(ctx context.Context, event notify.Event) bool
}

type Service struct {
	repo     Repository
	catalog  *catalog.Catalog
	notifier Notifier
	now      func() time.Time
}

func NewService(
	repo Repository,
	cat *catalog.Catalog,
	notifier Notifier,
) *Service {
	return &Service{
		repo:     repo,
		catalog:  cat,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit validates the request, copies the price from the catalog, assigns a
// fresh tracking number, and persists the order as pending. The price is
// never taken from the client.
func (s *Service) Submit(
	ctx context.Context,
	req SubmitOrderRequest,
) (*Order, error) {
	entry, ok := s.catalog.Get(req.ServiceID)
	if !ok {
		return nil, core.ValidationError("unknown service: " + req.ServiceID)
	}

	name := validate.Sanitize(req.CustomerName)
	if len(name) < 2 {
		return nil, core.ValidationError(
			"customer name must be at least 2 characters",
		)
	}

	email := validate.Sanitize(req.CustomerEmail)
	if !validate.Email(email) {
		return nil, core.ValidationError("invalid email address")
	}

	phone := validate.Sanitize(req.CustomerPhone)
	if !validate.Phone(phone) {
		return nil, core.ValidationError("invalid phone number")
	}

	order := &Order{
		ID:            uuid.New().String(),
		Service:       entry.Name,
		ServiceID:     entry.ID,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		Details:       validate.Sanitize(req.Details),
		Amount:        entry.Price,
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
	}

	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		trackingNumber, err := s.newTrackingNumber()
		if err != nil {
			return nil, fmt.Errorf("generate tracking number: %w", err)
		}
		order.TrackingNumber = trackingNumber

		err = s.repo.Create(ctx, order)
		if errors.Is(err, core.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("submit order: %w", err)
		}

		s.dispatchOrderCreated(ctx, order)
		return order, nil
	}

	return nil, fmt.Errorf("submit order: %w", core.ErrConflict)
}

// UpdateStatus moves the order to newStatus. Any status is reachable from
// any other; entering completed stamps the completion date, leaving it
// keeps the last one.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id, newStatus string,
) (*Order, error) {
	if !ValidStatus(newStatus) {
		return nil, core.ValidationError("unknown status: " + newStatus)
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Status = newStatus
	if newStatus == StatusCompleted {
		now := s.now()
		order.CompletedDate = &now
	}

	if err := s.repo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *Service) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber string,
) (*Order, error) {
	return s.repo.GetByTrackingNumber(ctx, trackingNumber)
}

func (s *Service) List(
	ctx context.Context,
	params ListOrdersParams,
) ([]Order, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) newTrackingNumber() (string, error) {
	var suffix [3]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", err
	}

	return fmt.Sprintf("NTD-%s-%s",
		s.now().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(suffix[:])),
	), nil
}

// dispatchOrderCreated announces the order after its commit. Delivery is
// best-effort and must not delay or fail the response.
func (s *Service) dispatchOrderCreated(ctx context.Context, order *Order) {
	event := notify.Event{
		Kind:          notify.KindOrderCreated,
		Service:       order.Service,
		Amount:        order.Amount.StringFixed(2),
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Details:       order.Details,
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
