package session

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"uiventures-tps/internal/config"
	"uiventures-tps/internal/models"
)

var testUser = models.User{
	ID:         "u1",
	Name:       "Ada",
	Email:      "ada@ui.edu",
	Role:       models.RoleCashier,
	Department: "bookshop",
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Store:      config.SessionStoreCookie,
		CookieName: "tps_session",
		Secret:     "0123456789abcdef0123456789abcdef",
		MaxAge:     time.Hour,
	}
}

// roundTrip saves user with store and returns a request carrying the
// cookies the save produced.
func roundTrip(t *testing.T, store Store, user models.User) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
	if err := store.Save(w, r, user); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestStores_SaveLoadClear(t *testing.T) {
	stores := map[string]Store{
		"cookie": NewCookieStore(testSessionConfig()),
		"memory": NewMemoryStore("tps_session", time.Hour),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			r := roundTrip(t, store, testUser)

			got, ok, err := store.Load(r)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if !ok {
				t.Fatal("Load() ok = false, want true")
			}
			if got != testUser {
				t.Errorf("Load() = %+v, want %+v", got, testUser)
			}

			w := httptest.NewRecorder()
			if err := store.Clear(w, r); err != nil {
				t.Fatalf("Clear() failed: %v", err)
			}

			cleared := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			for _, c := range w.Result().Cookies() {
				if c.MaxAge >= 0 {
					cleared.AddCookie(c)
				}
			}
			if _, ok, _ := store.Load(cleared); ok {
				t.Error("Load() after Clear() should report no session")
			}
		})
	}
}

func TestStores_NoCookie(t *testing.T) {
	stores := map[string]Store{
		"cookie": NewCookieStore(testSessionConfig()),
		"memory": NewMemoryStore("tps_session", time.Hour),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			_, ok, err := store.Load(r)
			if err != nil || ok {
				t.Errorf("Load() = ok %v, err %v; want false, nil", ok, err)
			}
		})
	}
}

func TestCookieStore_TamperedCookie(t *testing.T) {
	store := NewCookieStore(testSessionConfig())
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: "tps_session", Value: "not-a-signed-value"})

	_, ok, err := store.Load(r)
	if err != nil || ok {
		t.Errorf("Load() = ok %v, err %v; want false, nil", ok, err)
	}
}

func TestMemoryStore_Put(t *testing.T) {
	store := NewMemoryStore("tps_session", time.Hour)
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(store.Put("fixed", testUser))

	got, ok, _ := store.Load(r)
	if !ok || got.ID != "u1" {
		t.Errorf("Load() = %+v, %v; want u1, true", got, ok)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore("tps_session", time.Hour)
	now := time.Now()
	store.now = func() time.Time { return now }

	stale := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	stale.AddCookie(store.Put("stale", testUser))
	fresh := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	now = now.Add(50 * time.Minute)
	fresh.AddCookie(store.Put("fresh", testUser))

	now = now.Add(20 * time.Minute)
	if _, ok, _ := store.Load(stale); ok {
		t.Error("Load() returned a session older than max age")
	}
	if _, ok, _ := store.Load(fresh); !ok {
		t.Error("Load() lost a session younger than max age")
	}

	w := httptest.NewRecorder()
	if err := store.Save(w, httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil), testUser); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if got := store.size(); got != 2 {
		t.Errorf("size = %d, want 2 after the stale session is swept", got)
	}
}

func TestMiddleware(t *testing.T) {
	store := NewMemoryStore("tps_session", time.Hour)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	var seen *Session
	h := Middleware(store, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen.SignedIn() {
		t.Error("request without cookie should be signed out")
	}

	r = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(store.Put("s1", testUser))
	h.ServeHTTP(httptest.NewRecorder(), r)
	if !seen.SignedIn() || seen.User.Name != "Ada" {
		t.Errorf("session = %+v, want Ada signed in", seen)
	}

	r = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(store.Put("s2", models.User{Name: "no id"}))
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen.SignedIn() {
		t.Error("a stored user without an id should not count as signed in")
	}
}

func TestFromContext_Empty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if FromContext(r.Context()).SignedIn() {
		t.Error("empty context should be signed out")
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	rdb, err := ConnectRedis(config.RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("ConnectRedis() failed: %v", err)
	}
	defer rdb.Close()

	store := NewRedisStore(rdb, testSessionConfig())
	r := roundTrip(t, store, testUser)

	got, ok, err := store.Load(r)
	if err != nil || !ok || got != testUser {
		t.Fatalf("Load() = %+v, %v, %v", got, ok, err)
	}

	if err := store.Clear(httptest.NewRecorder(), r); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, ok, _ := store.Load(r); ok {
		t.Error("Load() after Clear() should report no session")
	}
}
