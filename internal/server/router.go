// Package server wires the chat handlers and middleware into one http.Handler.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/chatbix/internal/server/handlers"
	"github.com/iudanet/chatbix/internal/server/middleware"
)

// RouterConfig holds the transport settings of the HTTP surface
type RouterConfig struct {
	Version      string
	StaticDir    string // empty disables static hosting
	MaxBodyBytes int64
	// лимиты на login/register/new_message, запросов за RateWindow с одного IP
	AuthRate    int
	MessageRate int
	RateWindow  time.Duration
}

// DefaultRouterConfig returns the production defaults
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		Version:      "dev",
		MaxBodyBytes: middleware.DefaultMaxBodyBytes,
		AuthRate:     10,
		MessageRate:  60,
		RateWindow:   time.Minute,
	}
}

// Router is the root handler. Stop releases the rate limiter goroutines.
type Router struct {
	http.Handler
	limiter *middleware.PathLimiter
}

// NewRouter регистрирует все /api маршруты и, если задано, раздачу статики
func NewRouter(logger *slog.Logger, chat handlers.ChatService, cfg RouterConfig) *Router {
	authHandler := handlers.NewAuthHandler(logger, chat)
	messageHandler := handlers.NewMessageHandler(logger, chat)
	healthHandler := handlers.NewHealthHandler(logger, chat, cfg.Version)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/get_messages", messageHandler.GetMessages)
	api.HandleFunc("GET /api/heartbeat", messageHandler.Heartbeat)
	api.HandleFunc("POST /api/new_message", messageHandler.NewMessage)
	api.HandleFunc("POST /api/admin/delete_message", messageHandler.DeleteMessage)
	api.HandleFunc("GET /api/search", messageHandler.Search)
	api.HandleFunc("POST /api/login", authHandler.Login)
	api.HandleFunc("POST /api/logout", authHandler.Logout)
	api.HandleFunc("POST /api/register", authHandler.Register)
	api.HandleFunc("GET /api/health", healthHandler.Health)
	api.Handle("/api/", handlers.NotFound(logger))

	limiter := middleware.NewPathLimiter([]middleware.PathRateLimit{
		{Path: "/api/login", Rate: cfg.AuthRate, Window: cfg.RateWindow},
		{Path: "/api/register", Rate: cfg.AuthRate, Window: cfg.RateWindow},
		{Path: "/api/new_message", Rate: cfg.MessageRate, Window: cfg.RateWindow},
	}, 0, 0, logger)

	var apiHandler http.Handler = api
	apiHandler = middleware.BodyLimit(cfg.MaxBodyBytes)(apiHandler)
	apiHandler = limiter.Middleware(apiHandler)

	root := http.NewServeMux()
	root.Handle("/api/", apiHandler)
	if cfg.StaticDir != "" {
		root.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	// Цепочка: request id -> recovery -> logging -> маршруты
	var handler http.Handler = root
	handler = middleware.LoggingWithSkip(logger, []string{"/api/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	handler = middleware.RequestID(handler)

	return &Router{Handler: handler, limiter: limiter}
}

// Stop останавливает фоновые goroutines rate limiter
func (r *Router) Stop() {
	r.limiter.Stop()
}
