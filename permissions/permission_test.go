package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeeper/permissions"
	"innkeeper/shared/failure"
)

func TestAuthorize(t *testing.T) {
	frontDeskA := &permissions.Principal{
		UserID:  "user-1",
		Email:   "desk@hotel-a.test",
		Role:    permissions.RoleFrontDesk,
		HotelID: "hotel-a",
	}

	ownerA := &permissions.Principal{
		UserID:  "user-2",
		Email:   "owner@hotel-a.test",
		Role:    permissions.RoleHotelOwner,
		HotelID: "hotel-a",
	}

	managerA := &permissions.Principal{
		UserID:  "user-3",
		Email:   "manager@hotel-a.test",
		Role:    permissions.RoleHotelManager,
		HotelID: "hotel-a",
	}

	platformAdmin := &permissions.Principal{
		UserID: "user-4",
		Email:  "root@platform.test",
		Role:   permissions.RoleSuperAdmin,
	}

	guest := &permissions.Principal{
		UserID: "user-5",
		Email:  "guest@example.test",
		Role:   permissions.RoleGuest,
	}

	tests := []struct {
		name      string
		principal *permissions.Principal
		hotelID   string
		scope     permissions.Scope
		wantErr   error
	}{
		{
			name:      "no principal",
			principal: nil,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeFrontDesk,
			wantErr:   failure.UnauthenticatedError,
		},
		{
			name:      "front desk on own hotel",
			principal: frontDeskA,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeFrontDesk,
		},
		{
			name:      "front desk requesting owner dashboard of another hotel",
			principal: frontDeskA,
			hotelID:   "hotel-b",
			scope:     permissions.ScopeOwner,
			wantErr:   permissions.ErrTenantMismatch,
		},
		{
			name:      "front desk requesting accounting dashboard of own hotel",
			principal: frontDeskA,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeAccounting,
			wantErr:   permissions.ErrInsufficientRole,
		},
		{
			name:      "owner inherits front desk scope",
			principal: ownerA,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeFrontDesk,
		},
		{
			name:      "owner inherits pos scope",
			principal: ownerA,
			hotelID:   "hotel-a",
			scope:     permissions.ScopePOS,
		},
		{
			name:      "owner holds billing scope",
			principal: ownerA,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeBilling,
		},
		{
			name:      "manager inherits housekeeping scope",
			principal: managerA,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeHousekeeping,
		},
		{
			name:      "manager lacks billing scope",
			principal: managerA,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeBilling,
			wantErr:   permissions.ErrInsufficientRole,
		},
		{
			name:      "platform admin crosses tenants",
			principal: platformAdmin,
			hotelID:   "hotel-b",
			scope:     permissions.ScopeOwner,
		},
		{
			name:      "guest may use public booking anywhere",
			principal: guest,
			hotelID:   "hotel-a",
			scope:     permissions.ScopePublicBooking,
		},
		{
			name:      "guest denied staff dashboards",
			principal: guest,
			hotelID:   "hotel-a",
			scope:     permissions.ScopeHousekeeping,
			wantErr:   permissions.ErrTenantMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			granted, err := permissions.Authorize(tt.principal, tt.hotelID, tt.scope)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.scope, granted)
		})
	}
}

func TestAuthorize_OwnerCoversEveryStaffScope(t *testing.T) {
	owner := &permissions.Principal{
		UserID:  "user-2",
		Role:    permissions.RoleHotelOwner,
		HotelID: "hotel-a",
	}

	for _, scope := range []permissions.Scope{
		permissions.ScopeFrontDesk,
		permissions.ScopeHousekeeping,
		permissions.ScopeMaintenance,
		permissions.ScopeAccounting,
		permissions.ScopePOS,
	} {
		granted, err := permissions.Authorize(owner, "hotel-a", scope)

		assert.NoError(t, err, "owner should reach %s", scope)
		assert.Equal(t, scope, granted)
	}
}

func TestResolveLandingDashboard(t *testing.T) {
	tests := []struct {
		role permissions.Role
		want string
	}{
		{permissions.RoleSuperAdmin, "/admin"},
		{permissions.RoleDeveloperAdmin, "/admin"},
		{permissions.RoleHotelOwner, "/dashboard/owner"},
		{permissions.RoleHotelManager, "/dashboard/owner"},
		{permissions.RoleFrontDesk, "/dashboard/front-desk"},
		{permissions.RoleHousekeeping, "/dashboard/housekeeping"},
		{permissions.RoleMaintenance, "/dashboard/maintenance"},
		{permissions.RoleAccounting, "/dashboard/accounting"},
		{permissions.RolePOSStaff, "/dashboard/pos"},
		{permissions.RoleGuest, "/"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			route := permissions.ResolveLandingDashboard(&permissions.Principal{Role: tt.role})

			assert.Equal(t, tt.want, route)
		})
	}

	assert.Equal(t, "/", permissions.ResolveLandingDashboard(nil))
}

func TestRole_IsHotelScoped(t *testing.T) {
	assert.True(t, permissions.RoleFrontDesk.IsHotelScoped())
	assert.True(t, permissions.RoleHotelOwner.IsHotelScoped())
	assert.False(t, permissions.RoleSuperAdmin.IsHotelScoped())
	assert.False(t, permissions.RoleGuest.IsHotelScoped())
}
