package permissions

import "context"

type contextKey struct{}

// NewContext returns a context carrying the principal. The auth middleware
// installs it once per request; services read it back through EnsureTenant.
func NewContext(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, principal)
}

// FromContext returns the principal carried by the context, or nil when the
// request never passed authentication.
func FromContext(ctx context.Context) *Principal {
	principal, _ := ctx.Value(contextKey{}).(*Principal)

	return principal
}

// EnsureTenant rejects a principal acting on a resource owned by another
// hotel. Platform-admin roles pass unconditionally. Calls without a principal
// pass as well: those arrive through public or internal routes whose access is
// decided at the router, not here. The denial is the same generic one
// Authorize returns, so responses never reveal whether the resource exists.
func EnsureTenant(ctx context.Context, resourceHotelID string) error {
	principal := FromContext(ctx)
	if principal == nil || principal.Role.IsPlatformAdmin() {
		return nil
	}

	if principal.HotelID != "" && principal.HotelID == resourceHotelID {
		return nil
	}

	return ErrTenantMismatch
}
