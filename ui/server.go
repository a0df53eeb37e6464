package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"sukuyo/app"
	"sukuyo/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// ServerOptions holds the HTTP settings that come from configuration
type ServerOptions struct {
	GinMode     string
	CORSOrigins []string
}

// Server is the JSON API in front of the diagnosis service
type Server struct {
	router  *gin.Engine
	service *app.DiagnosisService
	logger  *zap.Logger
	opts    ServerOptions
}

// NewServer creates a new web server instance with routes installed
func NewServer(service *app.DiagnosisService, logger *zap.Logger, opts ServerOptions) *Server {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	s := &Server{
		router:  gin.New(),
		service: service,
		logger:  logger,
		opts:    opts,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(
		requestID(),
		requestLogger(s.logger),
		gin.CustomRecovery(s.recoverPanic),
		cors(s.opts.CORSOrigins),
	)
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/diagnose", s.handleDiagnose)
		api.POST("/premium-preview", s.handlePremiumPreview)
		api.GET("/shuku/:id", s.handleShuku)
		api.GET("/mansions", s.handleMansions)
	}

	s.router.NoRoute(func(c *gin.Context) {
		s.respondError(c, errors.NotFound("endpoint "+c.Request.URL.Path))
	})
}

// Start listens on addr and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("ephemeris", s.service.EphemerisName()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.respondError(c, errors.InternalError(fmt.Sprintf("panic: %v", recovered)))
}
