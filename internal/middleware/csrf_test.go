// AngelaMos | 2026
// csrf_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/carterperez-dev/ntandostore/internal/admin"
	"github.com/carterperez-dev/ntandostore/internal/core"
)

type fakeSessionStore struct {
	sessions map[string]*admin.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*admin.Session)}
}

func (f *fakeSessionStore) Create(
	_ context.Context,
	username string,
	authenticated bool,
) (*admin.Session, error) {
	session := &admin.Session{
		Token:         fmt.Sprintf("token-%d", len(f.sessions)+1),
		CSRFToken:     fmt.Sprintf("csrf-%d", len(f.sessions)+1),
		Username:      username,
		Authenticated: authenticated,
		CreatedAt:     time.Now(),
	}
	f.sessions[session.Token] = session
	return session, nil
}

func (f *fakeSessionStore) Get(
	_ context.Context,
	token string,
) (*admin.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, fmt.Errorf("get session: %w", core.ErrSessionExpired)
	}
	return session, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

const testCookie = "ntando_session"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCSRFVerifier(t *testing.T) {
	store := newFakeSessionStore()
	session, _ := store.Create(context.Background(), "", false)

	handler := CSRFVerifier(store, testCookie)(okHandler())

	t.Run("missing cookie fails closed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit_order", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rec.Code)
		}
	})

	t.Run("missing token fails closed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit_order", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rec.Code)
		}
	})

	t.Run("mismatched token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit_order", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
		req.Header.Set("X-CSRF-Token", "guessed")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rec.Code)
		}
	})

	t.Run("header token accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit_order", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
		req.Header.Set("X-CSRF-Token", session.CSRFToken)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rec.Code)
		}
	})

	t.Run("form field token accepted", func(t *testing.T) {
		form := url.Values{"csrf_token": {session.CSRFToken}}
		req := httptest.NewRequest(
			http.MethodPost,
			"/contact",
			strings.NewReader(form.Encode()),
		)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rec.Code)
		}
	})

	t.Run("stale session rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit_order", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "expired"})
		req.Header.Set("X-CSRF-Token", session.CSRFToken)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want 403", rec.Code)
		}
	})
}

func TestSessionAuthenticator(t *testing.T) {
	store := newFakeSessionStore()
	authed, _ := store.Create(context.Background(), "Ntando", true)
	anonymous, _ := store.Create(context.Background(), "", false)

	var seen *AuthContext
	handler := SessionAuthenticator(store, testCookie)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetAuthContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "gone"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("anonymous session rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: anonymous.Token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("authenticated session passes with principal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: authed.Token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		if seen == nil || seen.Username != "Ntando" {
			t.Errorf("principal: got %+v", seen)
		}
	})
}
