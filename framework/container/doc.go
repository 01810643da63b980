// Package container provides a type-indexed registry for wiring an
// application's dependencies.
//
// # Overview
//
// A Container holds at most one value per static type. Start-up code binds
// implementations; downstream code fetches them by type without knowing how
// they were built. The type parameter of the call is the key: binding under
// an interface makes the value reachable through that interface only.
//
// There is no auto-wiring, no lazy construction and no scoping. Values are
// built by the caller and handed over fully formed.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Populate: container.Put / container.PutAs, usually from ServiceProviders
//  3. Share: hand c to request handlers (WithContainer / FromContext)
//
// # Binding
//
//	// Concrete type: key is *config.Config
//	container.Put(c, cfg)
//
//	// Interface: key is GreetingService, not SpongebobGreeter
//	container.PutAs[GreetingService](c, SpongebobGreeter{})
//
// Binding the same type again replaces the previous value.
//
// # Resolving
//
//	// Required: panics with *NotBoundError when unbound
//	cfg := container.Get[*config.Config](c)
//
//	// Optional
//	if g, ok := container.TryGet[GreetingService](c); ok { ... }
//
//	// In-place mutation
//	container.GetMut[Stats](c).Requests++
//
// # Slots
//
//	greeter := container.For[GreetingService](c)
//	greeter.Provide(SpongebobGreeter{})
//	name := greeter.Fetch().Name()
//
// # Concurrency
//
// Container does no locking. Populate it, then share it for reading. Code
// that must keep mutating a shared container wraps it in a Locked.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) {
//	    container.PutAs[Mailer](c, smtp.New())
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
