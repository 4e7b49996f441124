// AngelaMos | 2026
// session.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/ntandostore/internal/core"
)

const sessionKeyPrefix = "session:"

// SessionStore holds session records outside the datastore. Tokens are
// opaque and high-entropy; the record carries no business data.
type SessionStore interface {
	Create(
		ctx context.Context,
		username string,
		authenticated bool,
	) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Create(
	ctx context.Context,
	username string,
	authenticated bool,
) (*Session, error) {
	token, err := core.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	csrfToken, err := core.NewCSRFToken()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	session := &Session{
		Token:         token,
		CSRFToken:     csrfToken,
		Username:      username,
		Authenticated: authenticated,
		CreatedAt:     time.Now(),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	key := sessionKeyPrefix + token
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return session, nil
}

func (s *redisSessionStore) Get(
	ctx context.Context,
	token string,
) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("get session: %w", core.ErrSessionExpired)
	}

	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get session: %w", core.ErrSessionExpired)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
