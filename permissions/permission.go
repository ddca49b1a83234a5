package permissions

import (
	"net/http"

	"innkeeper/shared/failure"
)

// Role is the closed set of principal roles. Effective permissions are fully
// determined by (Role, HotelID).
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleDeveloperAdmin Role = "DEVELOPER_ADMIN"
	RoleHotelOwner     Role = "HOTEL_OWNER"
	RoleHotelManager   Role = "HOTEL_MANAGER"
	RoleFrontDesk      Role = "FRONT_DESK"
	RoleHousekeeping   Role = "HOUSEKEEPING"
	RoleMaintenance    Role = "MAINTENANCE"
	RoleAccounting     Role = "ACCOUNTING"
	RolePOSStaff       Role = "POS_STAFF"
	RoleGuest          Role = "GUEST"
)

// Scope names a role-scoped dashboard or capability within one hotel.
type Scope string

const (
	ScopePlatformAdmin Scope = "platform-admin"
	ScopeOwner         Scope = "owner"
	ScopeBilling       Scope = "billing"
	ScopeFrontDesk     Scope = "front-desk"
	ScopeHousekeeping  Scope = "housekeeping"
	ScopeMaintenance   Scope = "maintenance"
	ScopeAccounting    Scope = "accounting"
	ScopePOS           Scope = "pos"
	ScopePublicBooking Scope = "public-booking"
)

// Principal is the authenticated identity handed to every authorization
// decision. It is built from validated JWT claims by the auth middleware and
// travels with the request context (see NewContext / FromContext).
type Principal struct {
	UserID  string
	Email   string
	Role    Role
	HotelID string
}

// staffScopes are the per-hotel dashboards owners and managers inherit.
var staffScopes = []Scope{
	ScopeFrontDesk,
	ScopeHousekeeping,
	ScopeMaintenance,
	ScopeAccounting,
	ScopePOS,
}

// capabilities maps each role to the scopes it may access within its own
// hotel. Platform-admin roles are handled separately since they span hotels.
var capabilities = map[Role][]Scope{
	RoleHotelOwner:   append([]Scope{ScopeOwner, ScopeBilling, ScopePublicBooking}, staffScopes...),
	RoleHotelManager: append([]Scope{ScopeOwner, ScopePublicBooking}, staffScopes...),
	RoleFrontDesk:    {ScopeFrontDesk, ScopePublicBooking},
	RoleHousekeeping: {ScopeHousekeeping},
	RoleMaintenance:  {ScopeMaintenance},
	RoleAccounting:   {ScopeAccounting},
	RolePOSStaff:     {ScopePOS},
	RoleGuest:        {ScopePublicBooking},
}

// landingRoutes maps each role to the canonical dashboard route used by the
// post-login redirect.
var landingRoutes = map[Role]string{
	RoleSuperAdmin:     "/admin",
	RoleDeveloperAdmin: "/admin",
	RoleHotelOwner:     "/dashboard/owner",
	RoleHotelManager:   "/dashboard/owner",
	RoleFrontDesk:      "/dashboard/front-desk",
	RoleHousekeeping:   "/dashboard/housekeeping",
	RoleMaintenance:    "/dashboard/maintenance",
	RoleAccounting:     "/dashboard/accounting",
	RolePOSStaff:       "/dashboard/pos",
	RoleGuest:          "/",
}

// Denial sentinels. Both carry the same generic message so responses never
// reveal whether the target hotel exists, but callers and tests can still tell
// them apart.
var (
	ErrTenantMismatch   = &failure.Failure{Code: http.StatusForbidden, Message: failure.ResourceRestrictedError.Message}
	ErrInsufficientRole = &failure.Failure{Code: http.StatusForbidden, Message: failure.ResourceRestrictedError.Message}
)

// IsPlatformAdmin reports whether the role spans all hotels.
func (r Role) IsPlatformAdmin() bool {
	return r == RoleSuperAdmin || r == RoleDeveloperAdmin
}

// IsHotelScoped reports whether the role requires a hotel affiliation.
func (r Role) IsHotelScoped() bool {
	switch r {
	case RoleHotelOwner, RoleHotelManager, RoleFrontDesk, RoleHousekeeping,
		RoleMaintenance, RoleAccounting, RolePOSStaff:
		return true
	default:
		return false
	}
}

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	if r.IsPlatformAdmin() {
		return true
	}

	_, ok := capabilities[r]

	return ok
}

// Covers reports whether the role's capability set includes the scope within
// its own hotel.
func (r Role) Covers(scope Scope) bool {
	if r.IsPlatformAdmin() {
		return true
	}

	for _, granted := range capabilities[r] {
		if granted == scope {
			return true
		}
	}

	return false
}

// Authorize decides whether the principal may exercise the requested scope
// against the target hotel. It returns the granted scope, or a failure:
// unauthenticated when there is no principal, a generic access-denied when the
// principal belongs to a different hotel or lacks the capability. Denials are
// deliberately indistinguishable so callers cannot enumerate tenants.
func Authorize(principal *Principal, targetHotelID string, scope Scope) (Scope, error) {
	if principal == nil || principal.UserID == "" {
		return "", failure.UnauthenticatedError
	}

	if principal.Role.IsPlatformAdmin() {
		return scope, nil
	}

	if scope == ScopePublicBooking && principal.Role.Covers(scope) {
		return scope, nil
	}

	if principal.HotelID == "" || principal.HotelID != targetHotelID {
		return "", ErrTenantMismatch
	}

	if !principal.Role.Covers(scope) {
		return "", ErrInsufficientRole
	}

	return scope, nil
}

// ResolveLandingDashboard maps the principal's role to the canonical route it
// should land on after authentication.
func ResolveLandingDashboard(principal *Principal) string {
	if principal == nil {
		return landingRoutes[RoleGuest]
	}

	route, ok := landingRoutes[principal.Role]
	if !ok {
		return landingRoutes[RoleGuest]
	}

	return route
}
