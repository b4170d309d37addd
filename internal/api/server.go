package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/prompts"
)

// Route paths for the askAura function
const (
	NetlifyFunctionPath = "/.netlify/functions/askAura"
	AskAuraPath         = "/api/ask-aura"
)

const shutdownTimeout = 10 * time.Second

// Server represents the API server
type Server struct {
	echo    *echo.Echo
	port    int
	handler *AuraHandler
}

// NewServer creates a new API server backed by the given generator and prompt builder
func NewServer(port int, generator ai.Generator, builder *prompts.PromptBuilder) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:    e,
		port:    port,
		handler: NewAuraHandler(generator, builder),
	}

	e.HTTPErrorHandler = server.errorHandler

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	}, middleware.CORS())

	// The handler does its own method check so every verb reaches it, preflights included.
	// The form is served from the same origin, so these routes carry no CORS middleware.
	s.echo.Any(NetlifyFunctionPath, s.handler.AskAura)
	s.echo.Any(AskAuraPath, s.handler.AskAura)
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

// errorHandler keeps echo's responses for client errors such as unknown routes.
// Anything else, including recovered panics, gets the generic failure body.
func (s *Server) errorHandler(err error, c echo.Context) {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		s.echo.DefaultHTTPErrorHandler(err, c)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("uri", c.Request().RequestURI).
		Msg("Unhandled server error")

	if c.Response().Committed {
		return
	}
	if werr := writeFailure(c); werr != nil {
		log.Error().Err(werr).Msg("Failed to write error response")
	}
}

// Start begins the API server and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Info().Int("port", s.port).Msg("Aura API listening")
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.echo.Shutdown(ctx)
}
