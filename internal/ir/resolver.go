package ir

import "context"

// Resolver maps an ItemID back to its declared name. A Program registry is
// the usual implementation; the renderer only ever reads it.
type Resolver interface {
	// NameOf returns the declared name for id, or false if the id is not
	// known to this resolver.
	NameOf(id ItemID) (string, bool)
}

type resolverKey struct{}

// WithResolver installs r as the active resolver for the returned context.
// Installation is scoped: a nested WithResolver shadows the outer binding
// for contexts derived from it, and the outer binding is restored on every
// exit path simply by using the outer context again. Contexts are the
// binding slots, so concurrent renders never observe each other's resolver
// unless they share a context.
func WithResolver(ctx context.Context, r Resolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFrom returns the active resolver for ctx, if any. A missing
// binding is not an error; rendering falls back to raw index forms.
func ResolverFrom(ctx context.Context) (Resolver, bool) {
	r, ok := ctx.Value(resolverKey{}).(Resolver)
	return r, ok
}
