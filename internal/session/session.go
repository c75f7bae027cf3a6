// Package session persists the signed-in user record between requests.
//
// The record returned by the sign-in/sign-up endpoints is stored verbatim and
// trusted until it is cleared; there is no expiry check or refresh beyond the
// cookie lifetime.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"uiventures-tps/internal/models"
	"uiventures-tps/internal/observability"
)

// Store is the storage capability behind a session.
type Store interface {
	Load(r *http.Request) (models.User, bool, error)
	Save(w http.ResponseWriter, r *http.Request, user models.User) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type sessionKey struct{}

// Session is the per-request view of the stored user.
type Session struct {
	User models.User
	ok   bool
}

// New returns a signed-in session for user.
func New(user models.User) *Session {
	return &Session{User: user, ok: true}
}

func (s *Session) SignedIn() bool {
	return s != nil && s.ok
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok {
		return s
	}
	return &Session{}
}

// Middleware loads the stored user into the request context. A missing or
// unreadable session yields a signed-out Session rather than an error.
func Middleware(store Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := &Session{}
			user, ok, err := store.Load(r)
			if err != nil {
				logger.Warn("failed to load session",
					"error", err,
					"request_id", observability.GetRequestID(r.Context()),
				)
			} else if ok && user.ID != "" {
				s = New(user)
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func encodeUser(u models.User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeUser(s string) (models.User, error) {
	var u models.User
	err := json.Unmarshal([]byte(s), &u)
	return u, err
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// idCookie carries an opaque session id for server-side stores.
type idCookie struct {
	name   string
	maxAge time.Duration
	secure bool
}

func (c idCookie) read(r *http.Request) string {
	ck, err := r.Cookie(c.name)
	if err != nil {
		return ""
	}
	return ck.Value
}

func (c idCookie) write(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c idCookie) expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
