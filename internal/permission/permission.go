// Package permission answers role and sector questions about a user. Every
// function accepts a nil user and is free of side effects.
//
// The role model has three tiers: super_admin is unrestricted, admin may
// write inside its own sector, user reads its own sector.
package permission

import "support-portal/internal/domain"

func IsSuperAdmin(user *domain.User) bool {
	return user != nil && user.Role == domain.RoleSuperAdmin
}

// IsAdmin is true for admin and super_admin.
func IsAdmin(user *domain.User) bool {
	return user != nil && (user.Role == domain.RoleAdmin || user.Role == domain.RoleSuperAdmin)
}

// CanEditContent reports whether user may create, edit or delete content that
// belongs to contentSector.
func CanEditContent(user *domain.User, contentSector domain.Sector) bool {
	if IsSuperAdmin(user) {
		return true
	}
	return user != nil && user.Role == domain.RoleAdmin && user.Sector == contentSector
}

func CanAccessSector(user *domain.User, sector domain.Sector) bool {
	if IsSuperAdmin(user) {
		return true
	}
	return user != nil && user.Sector == sector
}

// HasRole is a membership test; a missing user or role never matches.
func HasRole(user *domain.User, allowed ...domain.Role) bool {
	if user == nil || user.Role == "" {
		return false
	}
	for _, role := range allowed {
		if user.Role == role {
			return true
		}
	}
	return false
}

// CanManageUser reports whether actor may create, edit or delete target.
// Admins are confined to their sector and may not hand out super_admin.
func CanManageUser(actor *domain.User, target *domain.User) bool {
	if IsSuperAdmin(actor) {
		return true
	}
	if !IsAdmin(actor) || target == nil {
		return false
	}
	return target.Role != domain.RoleSuperAdmin && target.Sector == actor.Sector
}
