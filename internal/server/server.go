package server

import (
	"log/slog"
	"net/http"

	"uiventures-tps/internal/handlers"
	"uiventures-tps/internal/services"
	"uiventures-tps/internal/session"
)

// Deps are the services the routes are served from.
type Deps struct {
	Auth      *services.Auth
	Catalog   *services.Catalog
	Orders    *services.Orders
	Dashboard *services.Dashboard
	Sessions  session.Store
}

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	apiHandlers  *handlers.APIHandlers
	pageHandlers *handlers.PageHandlers
	authHandlers *handlers.AuthHandlers
	sseHandlers  *handlers.SSEHandlers
}

func NewServer(deps Deps, logger *slog.Logger) *Server {
	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		apiHandlers:  handlers.NewAPIHandlers(logger),
		pageHandlers: handlers.NewPageHandlers(deps.Dashboard, logger),
		authHandlers: handlers.NewAuthHandlers(deps.Auth, deps.Sessions, logger),
		sseHandlers:  handlers.NewSSEHandlers(deps.Catalog, deps.Orders, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Pages
	s.mux.HandleFunc("GET /{$}", s.pageHandlers.HandleHome)
	s.mux.HandleFunc("GET /login", s.pageHandlers.HandleLogin)
	s.mux.HandleFunc("GET /signup", s.pageHandlers.HandleSignup)
	s.mux.HandleFunc("GET /dashboard", s.pageHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)

	// Auth actions
	s.mux.HandleFunc("POST /auth/sign-in", s.authHandlers.HandleSignIn)
	s.mux.HandleFunc("POST /auth/sign-up", s.authHandlers.HandleSignUp)
	s.mux.HandleFunc("POST /auth/sign-out", s.authHandlers.HandleSignOut)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/products", s.sseHandlers.HandleProducts)
	s.mux.HandleFunc("GET /sse/orders", s.sseHandlers.HandleOrders)
	s.mux.HandleFunc("POST /orders", s.sseHandlers.HandleCreateOrder)
	s.mux.HandleFunc("DELETE /orders/{id}", s.sseHandlers.HandleDeleteOrder)
	s.mux.HandleFunc("POST /products", s.sseHandlers.HandleCreateProduct)
	s.mux.HandleFunc("DELETE /products/{id}", s.sseHandlers.HandleDeleteProduct)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
