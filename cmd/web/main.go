package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"uiventures-tps/internal/apiclient"
	"uiventures-tps/internal/config"
	"uiventures-tps/internal/middleware"
	"uiventures-tps/internal/observability"
	"uiventures-tps/internal/server"
	"uiventures-tps/internal/services"
	"uiventures-tps/internal/session"
)

const version = "1.0.0"

// newSessionStore builds the configured store and the hook that releases
// it on shutdown.
func newSessionStore(cfg *config.Config) (session.Store, func(ctx context.Context) error, error) {
	noop := func(ctx context.Context) error { return nil }

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := session.ConnectRedis(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis session store: %w", err)
		}
		return session.NewRedisStore(rdb, cfg.Session), func(ctx context.Context) error {
			return rdb.Close()
		}, nil
	case config.SessionStoreMemory:
		return session.NewMemoryStore(cfg.Session.CookieName, cfg.Session.MaxAge), noop, nil
	default:
		return session.NewCookieStore(cfg.Session), noop, nil
	}
}

// newHandler wires the services over client and wraps the routes in the
// middleware chain.
func newHandler(cfg *config.Config, client *apiclient.Client, store session.Store, logger *slog.Logger) http.Handler {
	catalog := services.NewCatalog(client, logger)
	orders := services.NewOrders(client, logger)

	srv := server.NewServer(server.Deps{
		Auth:      services.NewAuth(client, logger),
		Catalog:   catalog,
		Orders:    orders,
		Dashboard: services.NewDashboard(client, catalog, orders, logger),
		Sessions:  store,
	}, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		session.Middleware(store, logger),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", version,
		"addr", cfg.Address(),
		"session_store", cfg.Session.Store,
		"api_base_url", apiclient.DefaultBaseURL,
	)

	store, closeStore, err := newSessionStore(cfg)
	if err != nil {
		logger.Error("failed to create session store", "error", err)
		os.Exit(1)
	}

	handler := newHandler(cfg, apiclient.New("", logger), store, logger)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook("session store", func(ctx context.Context) error {
		logger.Info("closing session store", "store", cfg.Session.Store)
		return closeStore(ctx)
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
