// AngelaMos | 2026
// entity.go

package admin

import (
	"time"
)

// Account is the single back-office administrator. Created once at bootstrap;
// its login counters are mutated only by the authentication flow.
type Account struct {
	ID                  string     `db:"id"`
	Username            string     `db:"username"`
	PasswordHash        string     `db:"password_hash"`
	Email               *string    `db:"email"`
	FailedLoginAttempts int        `db:"failed_login_attempts"`
	LockedUntil         *time.Time `db:"locked_until"`
	LastLogin           *time.Time `db:"last_login"`
	CreatedAt           time.Time  `db:"created_at"`
}

func (a *Account) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

// Session is the server-side record behind an opaque session token. The CSRF
// token is minted once, when the session is created, and reused for the
// session's whole lifetime.
type Session struct {
	Token         string    `json:"token"`
	CSRFToken     string    `json:"csrf_token"`
	Username      string    `json:"username"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
}
