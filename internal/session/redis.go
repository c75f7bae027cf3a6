package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"uiventures-tps/internal/config"
	"uiventures-tps/internal/models"
)

const redisKeyPrefix = "tps:session:"

func ConnectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// RedisStore keeps the user record in Redis under an opaque cookie id.
type RedisStore struct {
	rdb    *redis.Client
	cookie idCookie
}

func NewRedisStore(rdb *redis.Client, cfg config.SessionConfig) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		cookie: idCookie{name: cfg.CookieName, maxAge: cfg.MaxAge, secure: cfg.Secure},
	}
}

func (s *RedisStore) Load(r *http.Request) (models.User, bool, error) {
	id := s.cookie.read(r)
	if id == "" {
		return models.User{}, false, nil
	}

	raw, err := s.rdb.Get(r.Context(), redisKeyPrefix+id).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return models.User{}, false, nil
	case err != nil:
		return models.User{}, false, fmt.Errorf("redis get session: %w", err)
	}

	user, err := decodeUser(raw)
	if err != nil {
		return models.User{}, false, fmt.Errorf("decode session user: %w", err)
	}
	return user, true, nil
}

func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, user models.User) error {
	raw, err := encodeUser(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	id, err := newSessionID()
	if err != nil {
		return fmt.Errorf("generate session id: %w", err)
	}

	if err := s.rdb.Set(r.Context(), redisKeyPrefix+id, raw, s.cookie.maxAge).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	if old := s.cookie.read(r); old != "" {
		s.rdb.Del(r.Context(), redisKeyPrefix+old)
	}

	s.cookie.write(w, id)
	return nil
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if id := s.cookie.read(r); id != "" {
		if err := s.rdb.Del(r.Context(), redisKeyPrefix+id).Err(); err != nil {
			return fmt.Errorf("redis delete session: %w", err)
		}
	}
	s.cookie.expire(w)
	return nil
}
