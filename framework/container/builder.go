package container

// Slot is a typed handle on one key of a container, the shorthand form of
// Put/Get for call sites that touch the same key repeatedly.
//
//	greeter := container.For[GreetingService](c)
//	greeter.Provide(SpongebobGreeter{})
//	greeter.Fetch().Name()
type Slot[T any] struct {
	container *Container
}

// For returns the handle for type key T on c.
func For[T any](c *Container) Slot[T] {
	return Slot[T]{container: c}
}

// Provide binds v under T. Same as Put[T].
func (s Slot[T]) Provide(v T) { Put[T](s.container, v) }

// Fetch returns the value bound under T and panics if there is none.
// Same as Get[T].
func (s Slot[T]) Fetch() T { return Get[T](s.container) }

// TryFetch is the non-panicking Fetch. Same as TryGet[T].
func (s Slot[T]) TryFetch() (T, bool) { return TryGet[T](s.container) }

// Bound reports whether a value is bound under T.
func (s Slot[T]) Bound() bool { return Has[T](s.container) }
