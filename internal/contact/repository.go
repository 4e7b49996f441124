// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/ntandostore/internal/core"
)

type Repository interface {
	CreateMessage(ctx context.Context, message *Message) error
	GetSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error)
	CreateSubscriber(ctx context.Context, subscriber *Subscriber) error
	ReactivateSubscriber(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMessage(ctx context.Context, message *Message) error {
	query := `
		INSERT INTO contact_messages (id, name, email, service, body, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &message.CreatedAt, query,
		message.ID,
		message.Name,
		message.Email,
		message.Service,
		message.Body,
		message.Status,
	)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}

	return nil
}

func (r *repository) GetSubscriberByEmail(
	ctx context.Context,
	email string,
) (*Subscriber, error) {
	query := `
		SELECT id, email, is_active, subscribed_date
		FROM newsletter_subscribers
		WHERE email = $1`

	var subscriber Subscriber
	err := r.db.GetContext(ctx, &subscriber, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscriber: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber: %w", err)
	}

	return &subscriber, nil
}

func (r *repository) CreateSubscriber(
	ctx context.Context,
	subscriber *Subscriber,
) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING subscribed_date`

	err := r.db.GetContext(ctx, &subscriber.SubscribedDate, query,
		subscriber.ID,
		subscriber.Email,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create subscriber: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create subscriber: %w", err)
	}

	subscriber.IsActive = true
	return nil
}

func (r *repository) ReactivateSubscriber(ctx context.Context, id string) error {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = TRUE
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("reactivate subscriber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reactivate subscriber: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("reactivate subscriber: %w", core.ErrNotFound)
	}

	return nil
}
