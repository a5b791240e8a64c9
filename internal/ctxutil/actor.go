// Package ctxutil carries the acting identity through request contexts.
// It has no internal dependencies so any layer can import it.
package ctxutil

import "context"

// ActorKey is the context key for the actor ID.
type ActorKey struct{}

// WithActorID returns a context that records who is raising or resolving
// escalations on this request.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(ActorKey{}).(string)
	return actor
}
