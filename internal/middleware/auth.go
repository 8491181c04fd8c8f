package middleware

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/republica/internal/auth"
	"github.com/mmynk/republica/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// IdentityKey is the context key for storing the authenticated caller.
const IdentityKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying the caller's identity.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// GetIdentity extracts the caller's identity from the context.
// Returns nil if the request is unauthenticated.
func GetIdentity(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(IdentityKey).(*models.Identity)
	return id
}

// GetMemberID extracts the authenticated member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	if id := GetIdentity(ctx); id != nil {
		return id.MemberID
	}
	return ""
}

// RequireAuth returns an interceptor that resolves the bearer token into an
// identity and rejects requests that carry none.
func RequireAuth(provider *auth.IdentityProvider) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			id, err := provider.Resolve(ctx, req.Header().Get("Authorization"))
			if err != nil {
				if isCredentialError(err) {
					return nil, connect.NewError(connect.CodeUnauthenticated, err)
				}
				return nil, connect.NewError(connect.CodeInternal, err)
			}

			return next(WithIdentity(ctx, id), req)
		}
	}
}

// OptionalAuth returns an interceptor that resolves the bearer token if present,
// but lets requests without a valid one through unauthenticated.
func OptionalAuth(provider *auth.IdentityProvider) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if header := req.Header().Get("Authorization"); header != "" {
				if id, err := provider.Resolve(ctx, header); err == nil {
					ctx = WithIdentity(ctx, id)
				}
			}
			return next(ctx, req)
		}
	}
}

func isCredentialError(err error) bool {
	return errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrUnknownMember)
}
