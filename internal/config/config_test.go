package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8084 {
		t.Errorf("port = %d, want 8084", cfg.Server.Port)
	}
	if cfg.Session.Store != SessionStoreCookie {
		t.Errorf("session store = %q, want %q", cfg.Session.Store, SessionStoreCookie)
	}
	if cfg.Session.MaxAge != 30*24*time.Hour {
		t.Errorf("session max age = %v, want 720h", cfg.Session.MaxAge)
	}
	if cfg.Address() != "localhost:8084" {
		t.Errorf("address = %q, want localhost:8084", cfg.Address())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Session.Store != SessionStoreRedis {
		t.Errorf("session store = %q, want redis", cfg.Session.Store)
	}
	if cfg.Redis.Addr != "cache:6379" {
		t.Errorf("redis addr = %q, want cache:6379", cfg.Redis.Addr)
	}
	if len(cfg.Security.AllowedOrigins) != 2 {
		t.Errorf("allowed origins = %v, want 2 entries", cfg.Security.AllowedOrigins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"port out of range", "SERVER_PORT", "70000", "server port"},
		{"unknown session store", "SESSION_STORE", "disk", "invalid session store"},
		{"short secret", "SESSION_SECRET", "short", "session secret"},
		{"bad log level", "LOG_LEVEL", "trace", "invalid log level"},
		{"bad log format", "LOG_FORMAT", "xml", "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", testSecret)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_SessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		secret  string
		wantErr bool
	}{
		{"cookie store without secret", "cookie", "", true},
		{"cookie store with secret", "cookie", testSecret, false},
		{"memory store without secret", "memory", "", false},
		{"redis store without secret", "redis", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_STORE", tt.store)
			t.Setenv("SESSION_SECRET", tt.secret)

			_, err := Load()
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "SESSION_SECRET") {
					t.Fatalf("Load() error = %v, want SESSION_SECRET error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
		})
	}
}
