// Package httpapi exposes the study tracker to the host application over
// HTTP: session start/stop and the heatmap window.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/koit3572/kostudy/internal/heatmap"
	"github.com/koit3572/kostudy/internal/session"
)

// Server wires the fiber app to the session registry and the aggregator.
type Server struct {
	app      *fiber.App
	log      *zap.Logger
	sessions *session.Manager
	heat     *heatmap.Service
	secret   string

	// baseCtx bounds tracker lifetimes: trackers must outlive the request
	// that started them, but not the process.
	baseCtx context.Context

	now func() time.Time
}

// New builds the server. baseCtx is the application context trackers run
// under; canceling it stops all accumulation.
func New(baseCtx context.Context, log *zap.Logger, sessions *session.Manager, heat *heatmap.Service, secret string) *Server {
	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		log:      log,
		sessions: sessions,
		heat:     heat,
		secret:   secret,
		baseCtx:  baseCtx,
		now:      time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := s.app.Group("/api")
	api.Post("/session/start", requireAuth(s.secret), s.handleSessionStart)
	api.Post("/session/stop", requireAuth(s.secret), s.handleSessionStop)
	api.Get("/heatmap", s.handleHeatmap)
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}
