package container

import (
	"reflect"
	"sort"
	"sync"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a type-indexed registry holding at most one value per type key.
//
// Each slot stores a *T behind an any; reads recover it with a checked
// assertion keyed by the same T, so a value bound under one type can never be
// read back as another.
//
// Container does no locking. Concurrent reads are safe once it is populated;
// Put, PutAs, Forget, GetMut and TryGetMut need exclusive access to the whole
// container. See Locked for an external wrapper.
type Container struct {
	// type key → *T
	slots map[reflect.Type]any
}

// New creates an empty container.
func New() *Container {
	return &Container{slots: make(map[reflect.Type]any)}
}

// ── Binding ───────────────────────────────────────────────────────────────────

// Put binds v under its static type T, replacing any value already bound
// under T.
//
//	container.Put(c, cfg)                 // key: *config.Config
//	container.Put(c, Port(8080))          // key: Port
func Put[T any](c *Container, v T) {
	slot := new(T)
	*slot = v
	c.slots[KeyOf[T]()] = slot
}

// PutAs binds v under the interface type I. The value is then reachable only
// through I, not through its concrete type.
//
//	container.PutAs[GreetingService](c, SpongebobGreeter{})
//	container.Get[GreetingService](c).Name()  // "Ahoy"
//	container.TryGet[SpongebobGreeter](c)     // zero, false
//
// PutAs is Put with the type parameter spelled out; instantiating it with an
// interface makes the compiler check that v implements I.
func PutAs[I any](c *Container, v I) {
	Put[I](c, v)
}

// Forget removes whatever is bound under T and reports whether anything was.
func Forget[T any](c *Container) bool {
	key := KeyOf[T]()
	if _, ok := c.slots[key]; !ok {
		return false
	}
	delete(c.slots, key)
	return true
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the value bound under T. It panics with a *NotBoundError when
// nothing is bound: use it for dependencies that must be configured by the
// time the call runs, and TryGet for optional ones.
func Get[T any](c *Container) T {
	v, ok := TryGet[T](c)
	if !ok {
		panic(&NotBoundError{Type: KeyOf[T]()})
	}
	return v
}

// TryGet returns the value bound under T, or the zero value and false.
func TryGet[T any](c *Container) (T, bool) {
	slot, ok := lookup[T](c)
	if !ok {
		var zero T
		return zero, false
	}
	return *slot, true
}

// GetMut returns a pointer to the slot bound under T. Writes through it are
// seen by later reads. It panics with a *NotBoundError when nothing is bound.
//
//	container.GetMut[Counter](c).Hits++
func GetMut[T any](c *Container) *T {
	slot, ok := lookup[T](c)
	if !ok {
		panic(&NotBoundError{Type: KeyOf[T]()})
	}
	return slot
}

// TryGetMut returns a pointer to the slot bound under T, or nil and false.
func TryGetMut[T any](c *Container) (*T, bool) {
	return lookup[T](c)
}

// Has reports whether a value is bound under T.
func Has[T any](c *Container) bool {
	_, ok := lookup[T](c)
	return ok
}

// lookup is an exact-key read followed by the checked downcast. There is no
// fallback to interfaces the stored value happens to implement.
func lookup[T any](c *Container) (*T, bool) {
	raw, ok := c.slots[KeyOf[T]()]
	if !ok {
		return nil, false
	}
	slot, ok := raw.(*T)
	return slot, ok
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Len returns the number of bound types.
func (c *Container) Len() int { return len(c.slots) }

// Types returns the names of all bound type keys in lexicographic order
// (for debugging).
func (c *Container) Types() []string {
	out := make([]string, 0, len(c.slots))
	for k := range c.slots {
		out = append(out, keyName(k))
	}
	sort.Strings(out)
	return out
}

// ── Locked ────────────────────────────────────────────────────────────────────

// Locked guards a Container that is still mutated after being shared between
// goroutines. Read callbacks may run concurrently; Write callbacks run alone.
//
//	l := container.NewLocked(c)
//	l.Write(func(c *container.Container) { container.Put(c, newCfg) })
//	l.Read(func(c *container.Container) { cfg = container.Get[*config.Config](c) })
type Locked struct {
	mu sync.RWMutex
	c  *Container
}

// NewLocked wraps c. Callers must stop touching c directly afterwards.
func NewLocked(c *Container) *Locked {
	return &Locked{c: c}
}

// Read runs fn with shared access to the container.
func (l *Locked) Read(fn func(c *Container)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.c)
}

// Write runs fn with exclusive access to the container.
func (l *Locked) Write(fn func(c *Container)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.c)
}
