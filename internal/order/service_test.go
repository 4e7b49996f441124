// AngelaMos | 2026
// service_test.go

package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/ntandostore/internal/catalog"
	"github.com/carterperez-dev/ntandostore/internal/config"
	"github.com/carterperez-dev/ntandostore/internal/core"
	"github.com/carterperez-dev/ntandostore/internal/notify"
)

var trackingRe = regexp.MustCompile(`^NTD-\d{8}-[0-9A-F]{6}$`)

type fakeRepository struct {
	orders        map[string]*Order
	tracking      map[string]bool
	createCalls   int
	failDuplicate int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		orders:   make(map[string]*Order),
		tracking: make(map[string]bool),
	}
}

func (f *fakeRepository) Create(_ context.Context, order *Order) error {
	f.createCalls++

	if f.failDuplicate > 0 {
		f.failDuplicate--
		return fmt.Errorf("create order: %w", core.ErrDuplicateKey)
	}
	if f.tracking[order.TrackingNumber] {
		return fmt.Errorf("create order: %w", core.ErrDuplicateKey)
	}

	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	clone := *order
	f.orders[order.ID] = &clone
	f.tracking[order.TrackingNumber] = true
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	clone := *order
	return &clone, nil
}

func (f *fakeRepository) GetByTrackingNumber(
	_ context.Context,
	trackingNumber string,
) (*Order, error) {
	for _, order := range f.orders {
		if order.TrackingNumber == trackingNumber {
			clone := *order
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get order by tracking number: %w", core.ErrNotFound)
}

func (f *fakeRepository) UpdateStatus(_ context.Context, order *Order) error {
	stored, ok := f.orders[order.ID]
	if !ok {
		return fmt.Errorf("update order status: %w", core.ErrNotFound)
	}
	stored.Status = order.Status
	stored.CompletedDate = order.CompletedDate
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepository) List(
	_ context.Context,
	_ ListOrdersParams,
) ([]Order, int, error) {
	out := make([]Order, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Stats(_ context.Context) (*Stats, error) {
	stats := &Stats{TotalOrders: len(f.orders), Revenue: decimal.Zero}
	for _, order := range f.orders {
		switch order.Status {
		case StatusPending:
			stats.PendingOrders++
		case StatusCompleted:
			stats.CompletedOrders++
			stats.Revenue = stats.Revenue.Add(order.Amount)
		}
	}
	return stats, nil
}

type fakeNotifier struct {
	events chan notify.Event
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{events: make(chan notify.Event, 8)}
}

func (f *fakeNotifier) Notify(_ context.Context, event notify.Event) bool {
	f.events <- event
	return true
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.New([]config.ServiceConfig{
		{ID: "domain", Name: "Domain Registration", Price: "24.99"},
		{ID: "wa_bot", Name: "WhatsApp Bot", Price: "50.00"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakeNotifier) {
	t.Helper()

	repo := newFakeRepository()
	notifier := newFakeNotifier()
	svc := NewService(repo, testCatalog(t), notifier)
	return svc, repo, notifier
}

func validRequest() SubmitOrderRequest {
	return SubmitOrderRequest{
		ServiceID:     "domain",
		CustomerName:  "Jane Moyo",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "+263 77 123 4567",
		Details:       "example.co.zw",
	}
}

func TestSubmitDomainOrder(t *testing.T) {
	svc, repo, notifier := newTestService(t)

	order, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !order.Amount.Equal(decimal.RequireFromString("24.99")) {
		t.Errorf("Amount: got %s, want 24.99", order.Amount)
	}
	if order.Status != StatusPending {
		t.Errorf("Status: got %q, want %q", order.Status, StatusPending)
	}
	if order.PaymentStatus != PaymentUnpaid {
		t.Errorf("PaymentStatus: got %q, want %q", order.PaymentStatus, PaymentUnpaid)
	}
	if !trackingRe.MatchString(order.TrackingNumber) {
		t.Errorf("TrackingNumber %q does not match pattern", order.TrackingNumber)
	}
	if order.Service != "Domain Registration" {
		t.Errorf("Service: got %q", order.Service)
	}
	if len(repo.orders) != 1 {
		t.Errorf("persisted orders: got %d, want 1", len(repo.orders))
	}

	select {
	case event := <-notifier.events:
		if event.Kind != notify.KindOrderCreated {
			t.Errorf("event kind: got %q", event.Kind)
		}
		if event.Amount != "24.99" {
			t.Errorf("event amount: got %q", event.Amount)
		}
	case <-time.After(time.Second):
		t.Error("expected an order-created notification")
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitOrderRequest)
	}{
		{"unknown service", func(r *SubmitOrderRequest) { r.ServiceID = "hosting_deluxe" }},
		{"short name", func(r *SubmitOrderRequest) { r.CustomerName = "J" }},
		{"malformed email", func(r *SubmitOrderRequest) { r.CustomerEmail = "not-an-email" }},
		{"short phone", func(r *SubmitOrderRequest) { r.CustomerPhone = "+263 77" }},
		{"phone with letters", func(r *SubmitOrderRequest) { r.CustomerPhone = "call me maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.orders) != 0 {
				t.Error("rejected submission must not create an order")
			}
		})
	}
}

func TestSubmitSanitizesFreeText(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest()
	req.CustomerName = `  Jane <b>"Moyo"</b>  `
	req.Details = "<script>alert(1)</script>"

	order, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if order.CustomerName != "Jane bMoyo/b" {
		t.Errorf("CustomerName: got %q", order.CustomerName)
	}
	if order.Details != "scriptalert(1)/script" {
		t.Errorf("Details: got %q", order.Details)
	}
}

func TestSubmitRetriesTrackingCollision(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.failDuplicate = 2

	order, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if repo.createCalls != 3 {
		t.Errorf("create calls: got %d, want 3", repo.createCalls)
	}
	if !trackingRe.MatchString(order.TrackingNumber) {
		t.Errorf("TrackingNumber %q does not match pattern", order.TrackingNumber)
	}
}

func TestSubmitGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.failDuplicate = maxTrackingAttempts

	_, err := svc.Submit(context.Background(), validRequest())
	if !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateStatusStampsCompletedDate(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	completedAt := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return completedAt }

	order, err := svc.UpdateStatus(ctx, submitted.ID, StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if order.CompletedDate == nil || !order.CompletedDate.Equal(completedAt) {
		t.Fatalf("CompletedDate: got %v, want %v", order.CompletedDate, completedAt)
	}

	// Leaving completed keeps the last completion date.
	order, err = svc.UpdateStatus(ctx, submitted.ID, StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if order.Status != StatusInProgress {
		t.Errorf("Status: got %q", order.Status)
	}
	if order.CompletedDate == nil || !order.CompletedDate.Equal(completedAt) {
		t.Errorf("CompletedDate changed on leaving completed: %v", order.CompletedDate)
	}

	stored := repo.orders[submitted.ID]
	if stored.CompletedDate == nil || !stored.CompletedDate.Equal(completedAt) {
		t.Errorf("persisted CompletedDate: got %v", stored.CompletedDate)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	_, err = svc.UpdateStatus(ctx, submitted.ID, "shipped")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.orders[submitted.ID].Status != StatusPending {
		t.Error("order state must be unchanged after a rejected transition")
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), "no-such-id", StatusCompleted)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrackingNumbersAreUnique(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := svc.Submit(ctx, validRequest())
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		if seen[order.TrackingNumber] {
			t.Fatalf("duplicate tracking number %q", order.TrackingNumber)
		}
		seen[order.TrackingNumber] = true
	}
}
