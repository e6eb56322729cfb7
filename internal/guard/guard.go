// Package guard decides whether a signed-in user may open a route.
package guard

import (
	"net/http"
	"slices"
	"support-portal/internal/auth"
	"support-portal/internal/domain"
	"support-portal/internal/permission"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/login"

// Rule lists what a route accepts. Empty lists accept everyone.
type Rule struct {
	AllowedRoles   []domain.Role
	AllowedSectors []domain.Sector
}

// Decision is either Allow, a Redirect target, or Pending while the auth
// state is still unknown.
type Decision struct {
	Allow    bool
	Redirect string
	Pending  bool
}

// HomePath is the landing page of a user's sector.
func HomePath(user *domain.User) string {
	if user == nil || user.Sector == "" {
		return "/" + string(domain.DefaultSector)
	}
	return "/" + string(user.Sector)
}

// Decide applies the checks in a fixed order: authentication, super_admin
// bypass, role, sector. The role check must run before the sector check.
func Decide(state auth.State, rule Rule) Decision {
	if _, ok := state.(auth.Unknown); ok || state == nil {
		return Decision{Pending: true}
	}

	user := auth.CurrentUser(state)
	if user == nil {
		return Decision{Redirect: LoginPath}
	}
	if permission.IsSuperAdmin(user) {
		return Decision{Allow: true}
	}
	if len(rule.AllowedRoles) > 0 && !permission.HasRole(user, rule.AllowedRoles...) {
		return Decision{Redirect: HomePath(user)}
	}
	if len(rule.AllowedSectors) > 0 && !slices.Contains(rule.AllowedSectors, user.Sector) {
		return Decision{Redirect: HomePath(user)}
	}
	return Decision{Allow: true}
}

// Require enforces rule on a page route with 302 redirects.
func Require(rule Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state auth.State = auth.Unknown{}
		if ac := auth.FromGin(c); ac != nil {
			state = ac.State()
		}

		d := Decide(state, rule)
		switch {
		case d.Allow:
			c.Next()
		case d.Pending:
			c.Header("Retry-After", "1")
			c.AbortWithStatus(http.StatusServiceUnavailable)
		default:
			c.Redirect(http.StatusFound, d.Redirect)
			c.Abort()
		}
	}
}
