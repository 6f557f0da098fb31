package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wolfman30/rcs-richcard-demo/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/rcs-richcard-demo/internal/http/middleware"
	"github.com/wolfman30/rcs-richcard-demo/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	RichCardHandler *handlers.RichCardHandler
	InboundHandler  *handlers.InboundRCSHandler
	MetricsHandler  http.Handler

	// SendRateLimitRPS limits POST /send-standalone-rich-card per client IP.
	// Zero disables the limit.
	SendRateLimitRPS   float64
	SendRateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.RichCardHandler != nil {
		r.Group(func(send chi.Router) {
			if cfg.SendRateLimitRPS > 0 {
				send.Use(httpmiddleware.RateLimit(cfg.SendRateLimitRPS, cfg.SendRateLimitBurst))
			}
			send.Post("/send-standalone-rich-card", cfg.RichCardHandler.SendStandaloneRichCard)
		})
	}

	// Vonage webhooks authenticate with a signed bearer token checked by the
	// handler itself.
	if cfg.InboundHandler != nil {
		r.Post("/inbound_rcs", cfg.InboundHandler.HandleInbound)
	}

	return r
}
