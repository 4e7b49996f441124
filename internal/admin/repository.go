// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/ntandostore/internal/core"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByUsername(ctx context.Context, username string) (*Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateLoginState(ctx context.Context, account *Account) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO admin_accounts (id, username, password_hash, email)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &account.CreatedAt, query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.Email,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create admin account: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create admin account: %w", err)
	}

	return nil
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*Account, error) {
	query := `
		SELECT id, username, password_hash, email,
		       failed_login_attempts, locked_until, last_login, created_at
		FROM admin_accounts
		WHERE username = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get admin account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get admin account: %w", err)
	}

	return &account, nil
}

func (r *repository) ExistsByUsername(
	ctx context.Context,
	username string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM admin_accounts WHERE username = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		return false, fmt.Errorf("check admin exists: %w", err)
	}

	return exists, nil
}

// UpdateLoginState persists the brute-force counters and last-login stamp.
// Every authentication attempt, pass or fail, commits through here before
// the response is written.
func (r *repository) UpdateLoginState(
	ctx context.Context,
	account *Account,
) error {
	query := `
		UPDATE admin_accounts
		SET failed_login_attempts = $2, locked_until = $3, last_login = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.FailedLoginAttempts,
		account.LockedUntil,
		account.LastLogin,
	)
	if err != nil {
		return fmt.Errorf("update login state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update login state: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update login state: %w", core.ErrNotFound)
	}

	return nil
}
