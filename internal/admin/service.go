// AngelaMos | 2026
// service.go

package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/ntandostore/internal/core"
)

// InvalidCredentialsError reports how many attempts remain before the
// account locks.
type InvalidCredentialsError struct {
	RemainingAttempts int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf(
		"invalid credentials (%d attempts remaining)",
		e.RemainingAttempts,
	)
}

type Service struct {
	repo        Repository
	sessions    SessionStore
	maxAttempts int
	lockWindow  time.Duration
	now         func() time.Time
}

func NewService(
	repo Repository,
	sessions SessionStore,
	maxAttempts int,
	lockWindow time.Duration,
) *Service {
	return &Service{
		repo:        repo,
		sessions:    sessions,
		maxAttempts: maxAttempts,
		lockWindow:  lockWindow,
		now:         time.Now,
	}
}

// Authenticate verifies the credentials against the lockout state machine.
// Unknown accounts and actively locked accounts both fail with ErrLocked so
// the response does not reveal which usernames exist. Counter updates are
// committed before any result is returned.
func (s *Service) Authenticate(
	ctx context.Context,
	username, password string,
) (*Session, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify
			_, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, fmt.Errorf("authenticate: %w", core.ErrLocked)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	now := s.now()

	if account.LockedUntil != nil {
		if now.Before(*account.LockedUntil) {
			return nil, fmt.Errorf("authenticate: %w", core.ErrLocked)
		}
		// Lock window elapsed: the account re-enters the active state with
		// zero failures before this attempt is evaluated.
		account.FailedLoginAttempts = 0
		account.LockedUntil = nil
	}

	valid, err := core.VerifyPasswordTimingSafe(password, &account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, s.recordFailure(ctx, account, now)
	}

	account.FailedLoginAttempts = 0
	account.LockedUntil = nil
	account.LastLogin = &now

	if err := s.repo.UpdateLoginState(ctx, account); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	session, err := s.sessions.Create(ctx, account.Username, true)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return session, nil
}

func (s *Service) recordFailure(
	ctx context.Context,
	account *Account,
	now time.Time,
) error {
	account.FailedLoginAttempts++

	if account.FailedLoginAttempts >= s.maxAttempts {
		until := now.Add(s.lockWindow)
		account.LockedUntil = &until

		if err := s.repo.UpdateLoginState(ctx, account); err != nil {
			return fmt.Errorf("record lockout: %w", err)
		}

		slog.Warn("admin account locked",
			"username", account.Username,
			"until", until,
		)
		return fmt.Errorf("authenticate: %w", core.ErrLocked)
	}

	if err := s.repo.UpdateLoginState(ctx, account); err != nil {
		return fmt.Errorf("record failed attempt: %w", err)
	}

	return &InvalidCredentialsError{
		RemainingAttempts: s.maxAttempts - account.FailedLoginAttempts,
	}
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// IssueAnonymousSession backs CSRF protection for public forms: visitors get
// an unauthenticated session whose CSRF token their form submissions must
// echo back.
func (s *Service) IssueAnonymousSession(ctx context.Context) (*Session, error) {
	session, err := s.sessions.Create(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("issue anonymous session: %w", err)
	}
	return session, nil
}

// Seed creates the bootstrap administrator account if it does not exist.
func (s *Service) Seed(
	ctx context.Context,
	username, password, email string,
) error {
	if username == "" || password == "" {
		return fmt.Errorf("seed admin: %w", core.ErrInvalidInput)
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	account := &Account{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
	}
	if email != "" {
		account.Email = &email
	}

	if err := s.repo.Create(ctx, account); err != nil {
		// A concurrent boot already created it.
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Info("seeded admin account", "username", username)
	return nil
}
