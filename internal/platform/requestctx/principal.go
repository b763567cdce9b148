// Package requestctx carries per-request identity through context values.
package requestctx

import "context"

// Principal describes the authenticated caller of a request, as resolved by
// the host application's credential middleware. A zero Principal means the
// request is anonymous.
type Principal struct {
	UserID   int64
	Username string
	// Method records which credential resolved the principal: "token",
	// "bearer", "basic", or "session".
	Method string
}

// Authenticated reports whether the principal identifies a real user.
func (p Principal) Authenticated() bool {
	return p.UserID != 0
}

type principalContextKey struct{}

// WithPrincipal stores an authenticated principal in context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the principal stored in context, if any.
func PrincipalFromContext(ctx context.Context) Principal {
	if ctx == nil {
		return Principal{}
	}
	value, _ := ctx.Value(principalContextKey{}).(Principal)
	return value
}
