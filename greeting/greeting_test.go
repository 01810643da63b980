package greeting_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-jab/framework/config"
	"github.com/km-arc/go-jab/framework/container"
	"github.com/km-arc/go-jab/framework/routing"
	"github.com/km-arc/go-jab/greeting"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// newRouter serves the greeting routes against c.
func newRouter(c *container.Container) *routing.Router {
	r := routing.New()
	r.Middleware(routing.InjectContainer(c), routing.Recoverer)
	greeting.Routes(r)
	return r
}

func get(t *testing.T, h http.Handler, path string, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ── ByName ───────────────────────────────────────────────────────────────────

func TestByName(t *testing.T) {
	s, err := greeting.ByName("SpongeBob")
	require.NoError(t, err)
	assert.Equal(t, "Ahoy", s.Name())

	s, err = greeting.ByName("squidward")
	require.NoError(t, err)
	assert.Equal(t, "Go away", s.Name())

	_, err = greeting.ByName("patrick")
	assert.EqualError(t, err, `unknown greeter "patrick" (supported: spongebob, squidward)`)
}

// ── Container isolation ──────────────────────────────────────────────────────

func TestGreeters_InSeparateContainers(t *testing.T) {
	sponge, squid := container.New(), container.New()
	container.PutAs[greeting.Service](sponge, greeting.Spongebob{})
	container.PutAs[greeting.Service](squid, greeting.Squidward{})

	assert.Equal(t, "Ahoy", container.Get[greeting.Service](sponge).Name())
	assert.Equal(t, "Go away", container.Get[greeting.Service](squid).Name())

	_, ok := container.TryGet[greeting.Squidward](squid)
	assert.False(t, ok, "interface binding must not be reachable by concrete type")
}

// ── Routes ───────────────────────────────────────────────────────────────────

func TestPlaintext_UsesBoundGreeter(t *testing.T) {
	c := container.New()
	container.PutAs[greeting.Service](c, greeting.Squidward{})

	rr := get(t, newRouter(c), "/plaintext", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Go away, World!", rr.Body.String())
}

func TestPlaintext_TwoRoutersDoNotLeak(t *testing.T) {
	sponge, squid := container.New(), container.New()
	container.PutAs[greeting.Service](sponge, greeting.Spongebob{})
	container.PutAs[greeting.Service](squid, greeting.Squidward{})

	assert.Equal(t, "Ahoy, World!", get(t, newRouter(sponge), "/plaintext", "").Body.String())
	assert.Equal(t, "Go away, World!", get(t, newRouter(squid), "/plaintext", "").Body.String())
}

func TestGreet_RouteParam(t *testing.T) {
	c := container.New()
	container.PutAs[greeting.Service](c, greeting.Spongebob{})

	rr := get(t, newRouter(c), "/greet/Patrick", "")

	assert.Equal(t, "Ahoy, Patrick!", rr.Body.String())
}

func TestGreet_JSON(t *testing.T) {
	c := container.New()
	container.PutAs[greeting.Service](c, greeting.Spongebob{})

	rr := get(t, newRouter(c), "/greet/Sandy", "application/json")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			Greeting string `json:"greeting"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Ahoy, Sandy!", body.Data.Greeting)
}

func TestNotFound(t *testing.T) {
	rr := get(t, newRouter(container.New()), "/nowhere", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not found", rr.Body.String())
}

func TestPlaintext_MissingBindingIs500(t *testing.T) {
	rr := get(t, newRouter(container.New()), "/plaintext", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code, "the unbound panic is recovered as a 500")
}

// ── Provider ─────────────────────────────────────────────────────────────────

func TestProvider_ExplicitService(t *testing.T) {
	c := container.New()
	(&greeting.Provider{Service: greeting.Squidward{}}).Register(c)

	assert.Equal(t, "Go away", container.Get[greeting.Service](c).Name())
}

func TestProvider_ByGreeterName(t *testing.T) {
	c := container.New()
	(&greeting.Provider{Greeter: "squidward"}).Register(c)

	assert.Equal(t, "Go away", container.Get[greeting.Service](c).Name())
}

func TestProvider_FromConfig(t *testing.T) {
	c := container.New()
	container.Put(c, &config.Config{Greeting: config.GreetingConfig{Greeter: "squidward"}})
	(&greeting.Provider{}).Register(c)

	assert.Equal(t, "Go away", container.Get[greeting.Service](c).Name())
}

func TestProvider_UnknownGreeterPanics(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() {
		(&greeting.Provider{Greeter: "plankton"}).Register(c)
	})
}

func TestProvider_BootMountsRoutes(t *testing.T) {
	c := container.New()
	r := routing.New()
	r.Middleware(routing.InjectContainer(c))
	container.Put(c, r)

	reg := container.NewProviderRegistry(c)
	reg.Register(&greeting.Provider{Service: greeting.Spongebob{}})
	reg.Boot()

	assert.Equal(t, "Ahoy, World!", get(t, r, "/plaintext", "").Body.String())
}
