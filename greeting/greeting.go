// Package greeting is the demo domain served by the application: a greeting
// service bound in the container under its interface and fetched per request.
package greeting

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/km-arc/go-jab/framework/config"
	"github.com/km-arc/go-jab/framework/container"
	gohttp "github.com/km-arc/go-jab/framework/http"
	"github.com/km-arc/go-jab/framework/routing"
)

// Service produces the salutation used in every greeting.
type Service interface {
	Name() string
}

type Spongebob struct{}

func (Spongebob) Name() string { return "Ahoy" }

type Squidward struct{}

func (Squidward) Name() string { return "Go away" }

var greeters = map[string]Service{
	"spongebob": Spongebob{},
	"squidward": Squidward{},
}

// ByName returns the greeter registered under name (case-insensitive).
func ByName(name string) (Service, error) {
	if s, ok := greeters[strings.ToLower(name)]; ok {
		return s, nil
	}
	known := make([]string, 0, len(greeters))
	for k := range greeters {
		known = append(known, k)
	}
	sort.Strings(known)
	return nil, fmt.Errorf("unknown greeter %q (supported: %s)", name, strings.Join(known, ", "))
}

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider binds a Service and mounts the greeting routes.
//
// The greeter is chosen from Service if set, otherwise from Greeter, otherwise
// from the bound config's GREETER. An unknown name panics in Register: it is a
// start-up misconfiguration.
type Provider struct {
	Service Service
	Greeter string
}

func (p *Provider) Register(c *container.Container) {
	svc := p.Service
	if svc == nil {
		name := p.Greeter
		if name == "" {
			if cfg, ok := container.TryGet[*config.Config](c); ok {
				name = cfg.Greeting.Greeter
			}
		}
		s, err := ByName(name)
		if err != nil {
			panic(fmt.Errorf("greeting: %w", err))
		}
		svc = s
	}
	container.PutAs[Service](c, svc)
}

func (p *Provider) Boot(c *container.Container) {
	Routes(container.Get[*routing.Router](c))
}

// ── Routes ────────────────────────────────────────────────────────────────────

// Routes mounts the greeting endpoints on r. Handlers read the Service from
// the container in the request context, so r must carry InjectContainer.
//
//	GET /plaintext     → "<name>, World!"
//	GET /greet/{who}   → "<name>, <who>!"
//	anything else      → 404 "Not found"
func Routes(r *routing.Router) {
	r.Get("/plaintext", plaintext)
	r.Get("/greet/{who}", greet)
	r.NotFound(notFound)
}

func plaintext(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "World")
}

func greet(w http.ResponseWriter, r *http.Request) {
	respond(w, r, gohttp.NewRequest(r).RouteParam("who"))
}

func respond(w http.ResponseWriter, r *http.Request, who string) {
	svc := container.Get[Service](container.FromContext(r.Context()))
	msg := fmt.Sprintf("%s, %s!", svc.Name(), who)

	res := gohttp.NewResponse(w)
	if gohttp.NewRequest(r).WantsJSON() {
		res.Success(map[string]any{"greeting": msg})
		return
	}
	res.Text(http.StatusOK, msg)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Text(http.StatusNotFound, "Not found")
}
