package permission

import (
	"support-portal/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func user(role domain.Role, sector domain.Sector) *domain.User {
	return &domain.User{ID: "1", Role: role, Sector: sector}
}

func TestSuperAdminAlwaysAllowed(t *testing.T) {
	for _, own := range append(domain.Sectors, "") {
		u := user(domain.RoleSuperAdmin, own)
		for _, target := range append(domain.Sectors, "", "unknown") {
			assert.True(t, CanEditContent(u, target), "edit %s from %s", target, own)
			assert.True(t, CanAccessSector(u, target), "access %s from %s", target, own)
		}
	}
}

func TestPredicatesAreTotal(t *testing.T) {
	roles := append(domain.Roles, "", "guest")
	sectors := append(domain.Sectors, "", "unknown")

	for _, role := range roles {
		for _, own := range sectors {
			for _, target := range sectors {
				u := user(role, own)
				assert.NotPanics(t, func() {
					_ = CanEditContent(u, target)
					_ = CanAccessSector(u, target)
					_ = HasRole(u, domain.RoleAdmin)
				})
			}
		}
	}

	assert.False(t, CanEditContent(nil, domain.SectorNOC))
	assert.False(t, CanAccessSector(nil, domain.SectorNOC))
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsSuperAdmin(nil))
}

func TestCanEditContent(t *testing.T) {
	tests := []struct {
		name   string
		user   *domain.User
		sector domain.Sector
		want   bool
	}{
		{"admin own sector", user(domain.RoleAdmin, domain.SectorNOC), domain.SectorNOC, true},
		{"admin other sector", user(domain.RoleAdmin, domain.SectorNOC), domain.SectorTecnico, false},
		{"user own sector", user(domain.RoleUser, domain.SectorNOC), domain.SectorNOC, false},
		{"unknown role", user("guest", domain.SectorNOC), domain.SectorNOC, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditContent(tt.user, tt.sector))
		})
	}
}

func TestCanAccessSector(t *testing.T) {
	assert.True(t, CanAccessSector(user(domain.RoleUser, domain.SectorComercial), domain.SectorComercial))
	assert.False(t, CanAccessSector(user(domain.RoleUser, domain.SectorComercial), domain.SectorAdm))
	assert.False(t, CanAccessSector(user(domain.RoleAdmin, domain.SectorComercial), domain.SectorAdm))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(user(domain.RoleAdmin, domain.SectorNOC)))
	assert.True(t, IsAdmin(user(domain.RoleSuperAdmin, "")))
	assert.False(t, IsAdmin(user(domain.RoleUser, domain.SectorNOC)))
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(user(domain.RoleAdmin, domain.SectorNOC), domain.RoleAdmin, domain.RoleSuperAdmin))
	assert.False(t, HasRole(user(domain.RoleUser, domain.SectorNOC), domain.RoleAdmin))
	assert.False(t, HasRole(user("", domain.SectorNOC), ""))
	assert.False(t, HasRole(nil, domain.RoleUser))
	assert.False(t, HasRole(user(domain.RoleUser, domain.SectorNOC)))
}

func TestCanManageUser(t *testing.T) {
	admin := user(domain.RoleAdmin, domain.SectorNOC)

	assert.True(t, CanManageUser(user(domain.RoleSuperAdmin, ""), user(domain.RoleSuperAdmin, domain.SectorAdm)))
	assert.True(t, CanManageUser(admin, user(domain.RoleUser, domain.SectorNOC)))
	assert.True(t, CanManageUser(admin, user(domain.RoleAdmin, domain.SectorNOC)))
	assert.False(t, CanManageUser(admin, user(domain.RoleUser, domain.SectorTecnico)))
	assert.False(t, CanManageUser(admin, user(domain.RoleSuperAdmin, domain.SectorNOC)))
	assert.False(t, CanManageUser(user(domain.RoleUser, domain.SectorNOC), user(domain.RoleUser, domain.SectorNOC)))
	assert.False(t, CanManageUser(admin, nil))
}
