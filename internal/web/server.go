// Package web is the storefront's server-rendered HTTP surface. Every
// page is plain HTML; interactive state lives in the visitor's
// server-side session.
package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rechargehub/storefront/internal/config"
	"github.com/rechargehub/storefront/internal/pkg/logger"
	"github.com/rechargehub/storefront/internal/pkg/metrics"
	"github.com/rechargehub/storefront/internal/storefront"
	"github.com/rechargehub/storefront/internal/web/middleware"
	"github.com/rechargehub/storefront/internal/web/session"
	"github.com/rechargehub/storefront/pkg/client"
)

// Server wires the storefront flows to HTTP handlers.
type Server struct {
	cfg      *config.Config
	log      *logger.Logger
	sessions *session.Manager
}

// New creates the web server.
func New(cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{cfg: cfg, log: log}
	s.sessions = session.NewManager(cfg.Auth.SessionSecret, s.newVisitor)
	return s
}

// clientTokenStore routes saved tokens into the visitor's API client so
// subsequent calls carry the bearer header.
type clientTokenStore struct {
	c *client.Client
}

func (s clientTokenStore) SaveToken(token string) {
	s.c.SetToken(token)
}

// newVisitor builds the per-browser state: a dedicated API client (it
// holds the visitor's token) and fresh flow instances.
func (s *Server) newVisitor() *session.Visitor {
	timeout := s.cfg.Backend.Timeout
	if timeout == 0 {
		timeout = client.DefaultTimeout
	}
	c := client.NewClient(client.Config{
		BaseURL: s.cfg.Backend.BaseURL,
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: &metrics.BackendTransport{},
		},
	})
	return &session.Visitor{
		Client:  c,
		State:   storefront.NewState(),
		Auth:    storefront.NewAuthFlow(c, clientTokenStore{c}, s.cfg.Auth.AdminEmail, s.log),
		Confirm: storefront.NewConfirmationFlow(c, s.log),
		Landing: true,
	}
}

// Router builds the HTTP handler with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.log))
	r.Use(middleware.Recovery(s.log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(s.allowedOrigins()))
	r.Use(metrics.Middleware)
	r.Use(middleware.RateLimit(50, 100))

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/", s.handleHome)
	r.Post("/operator", s.handleSelectOperator)
	r.Post("/mobile", s.handleSetMobile)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/mode", s.handleAuthMode)
	r.Post("/auth/logout", s.handleLogout)

	r.Post("/checkout", s.handleCheckout)
	r.Post("/checkout/pay", s.handlePay)
	r.Post("/checkout/close", s.handleCheckoutClose)
	r.Get("/checkout/status", s.handleCheckoutStatus)

	r.Get("/history", s.handleHistory)

	r.Get("/admin", s.handleAdmin)
	r.Post("/admin/plans", s.handleAdminCreate)
	r.Post("/admin/plans/{id}", s.handleAdminUpdate)
	r.Post("/admin/plans/{id}/delete", s.handleAdminDelete)

	return r
}

func (s *Server) allowedOrigins() []string {
	origins := []string{fmt.Sprintf("http://%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)}
	if s.cfg.Server.Environment == "development" {
		origins = append(origins, "http://localhost:5173", "http://127.0.0.1:5173")
	}
	return origins
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// visitor resolves the request's session, locked. Callers must call the
// returned unlock func.
func (s *Server) visitor(w http.ResponseWriter, r *http.Request) (*session.Visitor, func(), error) {
	v, err := s.sessions.Visitor(w, r)
	if err != nil {
		return nil, nil, err
	}
	v.Lock()
	return v, v.Unlock, nil
}
