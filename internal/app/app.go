package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/config"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/slot"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	slot   slot.Slot
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewApplicationWithConfig(ctx, cfg)
}

func NewApplicationWithConfig(ctx context.Context, cfg config.Application) (*Application, error) {
	storage, err := slot.NewByEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("Using %s storage", slot.ResolveEngine(cfg.Storage.Engine))

	deps, err := BuildDependencies(storage, cfg)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	if err := deps.WeekManager.Load(ctx); err != nil {
		_ = storage.Close()
		return nil, err
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, slot: storage}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = a.slot.Close()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := a.srv.Shutdown(shutdownCtx)
	if closeErr := a.slot.Close(); closeErr != nil {
		log.Errorf("failed to close storage: %v", closeErr)
	}
	return err
}

// Handler exposes the router, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.router
}
