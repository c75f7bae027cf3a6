package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"uiventures-tps/internal/config"
	"uiventures-tps/internal/models"
)

const userKey = "user"

// CookieStore keeps the user record inside a signed cookie.
type CookieStore struct {
	store *sessions.CookieStore
	name  string
}

func NewCookieStore(cfg config.SessionConfig) *CookieStore {
	cs := sessions.NewCookieStore([]byte(cfg.Secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{store: cs, name: cfg.CookieName}
}

func (s *CookieStore) Load(r *http.Request) (models.User, bool, error) {
	// A tampered or stale cookie decodes to a fresh session; treat it as signed out.
	sess, err := s.store.Get(r, s.name)
	if err != nil || sess.IsNew {
		return models.User{}, false, nil
	}

	raw, ok := sess.Values[userKey].(string)
	if !ok {
		return models.User{}, false, nil
	}

	user, err := decodeUser(raw)
	if err != nil {
		return models.User{}, false, fmt.Errorf("decode session user: %w", err)
	}
	return user, true, nil
}

func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, user models.User) error {
	sess, _ := s.store.Get(r, s.name)

	raw, err := encodeUser(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	sess.Values[userKey] = raw

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	delete(sess.Values, userKey)
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
