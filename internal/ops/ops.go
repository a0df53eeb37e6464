// Package ops serves the operator endpoints on a separate port: liveness,
// catalog readiness and the pprof profiler.
package ops

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"sukuyo/models"
	"sukuyo/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App is the ops router
type App struct {
	router  *chi.Mux
	catalog ports.CatalogRepository
	logger  *zap.Logger
}

// NewApp creates the ops router. catalog may be nil, in which case /readyz
// only reports liveness.
func NewApp(catalog ports.CatalogRepository, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		router:  chi.NewRouter(),
		catalog: catalog,
		logger:  logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Handler exposes the router
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealthz)
	a.router.Get("/readyz", a.handleReadyz)
	a.router.Mount("/debug", middleware.Profiler())
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (a *App) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	records, err := a.catalog.List(ctx)
	if err != nil {
		a.logger.Warn("catalog not ready",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())))
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	if len(records) != models.ShukuCount {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "incomplete", "records": len(records)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": len(records)})
}

// Serve runs the ops server on ln until ctx is cancelled
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("ops server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Start listens on addr and serves until ctx is cancelled
func (a *App) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
