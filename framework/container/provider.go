package container

import "reflect"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the start-up code that populates a container.
//
// Register binds values. It may fetch what providers registered before it
// bound, nothing else. Boot runs after every provider has been registered, so
// it may fetch freely.
//
//	type GreetingProvider struct{ container.BaseProvider }
//
//	func (p *GreetingProvider) Register(c *container.Container) {
//	    container.PutAs[greeting.Service](c, greeting.Spongebob{})
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	Register(c *Container)

	// Boot is called after all providers are registered.
	Boot(c *Container)
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable no-op Boot. Embed it and implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) {}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry runs the register and boot phases of a set of providers
// against one container.
type ProviderRegistry struct {
	c          *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		c:          c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register calls provider.Register. Registering the same provider value twice
// is a no-op. A provider registered after Boot is booted immediately.
//
// Providers are expected to be pointers. A provider whose dynamic type is not
// comparable (a struct value holding a slice or map) cannot be recognised
// again and is registered on every call.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if reflect.TypeOf(provider).Comparable() {
		if r.registered[provider] {
			return
		}
		r.registered[provider] = true
	}

	provider.Register(r.c)
	r.providers = append(r.providers, provider)

	if r.booted {
		provider.Boot(r.c)
	}
}

// Boot calls Boot on every registered provider, in registration order.
// Only the first call has any effect.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.providers {
		provider.Boot(r.c)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
