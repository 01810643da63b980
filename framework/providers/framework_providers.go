package providers

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-jab/framework/config"
	"github.com/km-arc/go-jab/framework/container"
	gohttp "github.com/km-arc/go-jab/framework/http"
	"github.com/km-arc/go-jab/framework/logging"
	"github.com/km-arc/go-jab/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the configuration from .env and the process
// environment.
//
// Bound types:
//   - *config.Config
//
// If Config is set it is bound as-is and nothing is loaded.
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	Config   *config.Config
}

func (p *ConfigServiceProvider) Register(c *container.Container) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Load(p.EnvFiles...)
	}
	container.Put(c, cfg)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the application logger from the log section
// of the configuration.
//
// Bound types:
//   - *slog.Logger
//
// Requires *config.Config to be bound by an earlier provider.
type LoggingServiceProvider struct {
	container.BaseProvider
	Out io.Writer // default: os.Stderr
}

func (p *LoggingServiceProvider) Register(c *container.Container) {
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	cfg := container.Get[*config.Config](c)
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, out).
		With("app", cfg.App.Name, "env", cfg.App.Env)
	container.Put(c, logger)
}

// Boot logs what ended up in the container once every provider has run.
func (p *LoggingServiceProvider) Boot(c *container.Container) {
	container.Get[*slog.Logger](c).Debug("container booted",
		"bindings", c.Len(),
		"types", c.Types())
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider creates the application's Prometheus registry.
//
// Bound types:
//   - *prometheus.Registry
//
// Besides the Go runtime and process collectors, the registry exports
// jab_container_bindings, the number of types bound in the container.
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(c *container.Container) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "jab_container_bindings",
				Help: "Number of types bound in the dependency container",
			},
			func() float64 { return float64(c.Len()) },
		),
	)
	container.Put(c, reg)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router and, on Boot, its
// middleware stack and system routes.
//
// Bound types:
//   - *routing.Router
//
// Middleware, outermost first: request ID, request logging (when a
// *slog.Logger is bound), metrics (when a *prometheus.Registry is bound),
// container injection, panic recovery. System routes: GET /health,
// GET /metrics.
//
// chi rejects middleware added after the first route, so providers that add
// routes must do it in Boot and be registered after this one.
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(c *container.Container) {
	container.Put(c, routing.New())
}

func (p *RoutingServiceProvider) Boot(c *container.Container) {
	r := container.Get[*routing.Router](c)

	r.Middleware(routing.RequestID)
	if logger, ok := container.TryGet[*slog.Logger](c); ok {
		r.Middleware(routing.Logger(logger))
	}
	reg, hasMetrics := container.TryGet[*prometheus.Registry](c)
	if hasMetrics {
		r.Middleware(routing.Metrics(reg))
	}
	r.Middleware(routing.InjectContainer(c))
	r.Middleware(routing.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).JSON(http.StatusOK, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	if hasMetrics {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
}
