package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/km-arc/go-jab/framework/config"
	"github.com/km-arc/go-jab/framework/container"
	"github.com/km-arc/go-jab/framework/providers"
	"github.com/km-arc/go-jab/framework/routing"
)

// Application is the top-level application container.
// It embeds the dependency Container and ProviderRegistry so user code can
// call container.Put(app.Container, ...) and app.Register(...) directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// Options tune New. The zero value loads .env and logs to stderr.
type Options struct {
	EnvFiles  []string
	Config    *config.Config // bound as-is when set; EnvFiles is ignored
	LogOutput io.Writer
}

// New creates the application and registers the framework providers:
// config, logging, metrics, routing (in that order).
func New(opts Options) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	registry.Register(&providers.ConfigServiceProvider{EnvFiles: opts.EnvFiles, Config: opts.Config})
	registry.Register(&providers.LoggingServiceProvider{Out: opts.LogOutput})
	registry.Register(&providers.MetricsServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config fetches *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Get[*config.Config](a.Container)
}

// Logger fetches *slog.Logger from the container.
func (a *Application) Logger() *slog.Logger {
	return container.Get[*slog.Logger](a.Container)
}

// Router fetches *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Get[*routing.Router](a.Container)
}

// Metrics fetches *prometheus.Registry from the container.
func (a *Application) Metrics() *prometheus.Registry {
	return container.Get[*prometheus.Registry](a.Container)
}

// Run boots the application (if needed) and serves HTTP on the configured
// port until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.Config().Server.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", a.Config().Server.Port, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Handler:      a.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server starting",
		slog.String("addr", ln.Addr().String()),
		slog.Int("bindings", a.Len()),
		slog.Duration("readTimeout", cfg.Server.ReadTimeout),
		slog.Duration("writeTimeout", cfg.Server.WriteTimeout),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
