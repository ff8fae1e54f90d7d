package internal

import (
	"context"

	"github.com/docvault/docvault/internal/core"
)

type ctxKey string

const contextPrincipalKey ctxKey = "principal"

// PrincipalFromContext returns the authenticated principal placed in the
// context by the auth middleware, or a zero principal when the request is
// unauthenticated.
func PrincipalFromContext(ctx context.Context) core.Principal {
	if ctx == nil {
		return core.Principal{}
	}
	if p, ok := ctx.Value(contextPrincipalKey).(core.Principal); ok {
		return p
	}
	return core.Principal{}
}

func ContextWithPrincipal(ctx context.Context, p core.Principal) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, p)
}
