// AngelaMos | 2026
// notify.go

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Kind string

const (
	KindOrderCreated     Kind = "order-created"
	KindContactSubmitted Kind = "contact-submitted"
)

// Event carries the display fields of something worth announcing. It is a
// snapshot: dispatch happens after the triggering write has committed, so
// the event must not reference live entities.
type Event struct {
	Kind          Kind
	Service       string
	Amount        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Details       string
}

// Dispatcher formats events into the operator's message style and writes
// them to the log. Delivery is advisory: Notify never returns an error and
// must never block or retry, so callers can fire it from a goroutine after
// commit without affecting the response.
type Dispatcher struct {
	logger        *slog.Logger
	recipient     string
	paymentNumber string
	now           func() time.Time
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:        logger,
		recipient:     "+263718456744",
		paymentNumber: "+263786831091 (EcoCash/Innbucks)",
		now:           time.Now,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, event Event) bool {
	message, err := d.format(event)
	if err != nil {
		d.logger.ErrorContext(ctx, "notification dropped",
			"kind", string(event.Kind),
			"error", err,
		)
		return false
	}

	d.logger.InfoContext(ctx, "notification",
		"kind", string(event.Kind),
		"recipient", d.recipient,
		"message", message,
	)
	return true
}

func (d *Dispatcher) format(event Event) (string, error) {
	var header string
	switch event.Kind {
	case KindOrderCreated:
		header = "🔔 NEW ORDER - Ntandostore"
	case KindContactSubmitted:
		header = "🔔 NEW CONTACT MESSAGE - Ntandostore"
	default:
		return "", fmt.Errorf("unknown event kind %q", event.Kind)
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString("📦 Service: " + event.Service + "\n")
	b.WriteString("💰 Amount: $" + event.Amount + "\n\n")
	b.WriteString("👤 Customer Details:\n")
	b.WriteString("Name: " + event.CustomerName + "\n")
	b.WriteString("Email: " + event.CustomerEmail + "\n")
	b.WriteString("Phone: " + event.CustomerPhone + "\n\n")
	b.WriteString("📝 Details: " + event.Details + "\n\n")
	b.WriteString("🕒 Order Time: " + d.now().Format("2006-01-02 15:04:05") + "\n\n")

	if event.Kind == KindOrderCreated {
		b.WriteString("Payment Number: " + d.paymentNumber + "\n")
	}

	return b.String(), nil
}
