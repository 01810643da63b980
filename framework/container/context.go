package container

import "context"

// ctxKey is unexported so no other package can collide with it.
type ctxKey struct{}

// WithContainer returns a copy of ctx carrying c.
func WithContainer(ctx context.Context, c *Container) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the container carried by ctx. A request that reaches a
// handler without one means the injection middleware was never installed, so
// this panics rather than returning nil.
func FromContext(ctx context.Context) *Container {
	c, ok := TryFromContext(ctx)
	if !ok {
		panic("container: container missing from context")
	}
	return c
}

// TryFromContext returns the container carried by ctx, if any.
func TryFromContext(ctx context.Context) (*Container, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Container)
	return c, ok && c != nil
}
