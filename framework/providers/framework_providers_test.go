package providers_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jab/framework/config"
	"github.com/km-arc/go-jab/framework/container"
	"github.com/km-arc/go-jab/framework/providers"
	"github.com/km-arc/go-jab/framework/routing"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "TestApp", Env: "testing"},
		Log: config.LogConfig{Level: "debug", Format: "text"},
	}
}

// boot wires the framework providers the same way the application kernel does.
func boot(t *testing.T, out *bytes.Buffer) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&providers.ConfigServiceProvider{Config: testConfig()})
	reg.Register(&providers.LoggingServiceProvider{Out: out})
	reg.Register(&providers.MetricsServiceProvider{})
	reg.Register(&providers.RoutingServiceProvider{})
	reg.Boot()
	return c
}

func TestConfigServiceProvider_BindsGivenConfig(t *testing.T) {
	c := container.New()
	cfg := testConfig()
	(&providers.ConfigServiceProvider{Config: cfg}).Register(c)

	assert.Same(t, cfg, container.Get[*config.Config](c))
}

func TestConfigServiceProvider_LoadsFromEnv(t *testing.T) {
	t.Setenv("APP_NAME", "FromEnv")
	c := container.New()
	(&providers.ConfigServiceProvider{}).Register(c)

	assert.Equal(t, "FromEnv", container.Get[*config.Config](c).App.Name)
}

func TestLoggingServiceProvider_RequiresConfig(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() {
		(&providers.LoggingServiceProvider{}).Register(c)
	})
}

func TestFrameworkProviders_BindAllTypes(t *testing.T) {
	c := boot(t, &bytes.Buffer{})

	assert.True(t, container.Has[*config.Config](c))
	assert.True(t, container.Has[*slog.Logger](c))
	assert.True(t, container.Has[*prometheus.Registry](c))
	assert.True(t, container.Has[*routing.Router](c))
}

func TestLoggingServiceProvider_LogsBoot(t *testing.T) {
	var out bytes.Buffer
	boot(t, &out)

	assert.Contains(t, out.String(), "container booted")
	assert.Contains(t, out.String(), "app=TestApp")
	assert.Contains(t, out.String(), "bindings=4")
}

func TestRoutingServiceProvider_HealthRoute(t *testing.T) {
	c := boot(t, &bytes.Buffer{})
	r := container.Get[*routing.Router](c)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rr.Header().Get(routing.RequestIDHeader))
}

func TestRoutingServiceProvider_MetricsRoute(t *testing.T) {
	c := boot(t, &bytes.Buffer{})
	r := container.Get[*routing.Router](c)

	// One request first so the HTTP series exist.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "jab_container_bindings 4")
	assert.Contains(t, body, `jab_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestRoutingServiceProvider_WithoutLoggerOrMetrics(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&providers.RoutingServiceProvider{})
	reg.Boot()

	r := container.Get[*routing.Router](c)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
