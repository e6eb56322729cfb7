// Package page serves the portal's navigable routes as JSON page models.
// Every page except /login sits behind the route guard.
package page

import (
	"net/http"
	"support-portal/internal/auth"
	"support-portal/internal/content"
	"support-portal/internal/dashboard"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/guard"
	"support-portal/internal/i18n"
	"support-portal/internal/permission"
	"support-portal/internal/user"
	"support-portal/internal/utils"

	"github.com/gin-gonic/gin"
)

var adminRule = guard.Rule{AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}}

type Handler struct {
	content   content.Service
	dashboard *dashboard.Service
	users     user.Service
	messages  *i18n.Messages
}

func NewHandler(contentService content.Service, dashboardService *dashboard.Service, userService user.Service, messages *i18n.Messages) *Handler {
	return &Handler{
		content:   contentService,
		dashboard: dashboardService,
		users:     userService,
		messages:  messages,
	}
}

// Model is the envelope every page answers with.
type Model struct {
	Page string        `json:"page"`
	Auth auth.Snapshot `json:"auth"`
	Data any           `json:"data,omitempty"`
}

func currentSession(c *gin.Context) (auth.State, *domain.User, string) {
	ac := auth.FromGin(c)
	if ac == nil {
		return auth.Unknown{}, nil, ""
	}
	state := ac.State()
	return state, auth.CurrentUser(state), ac.Token()
}

func render(c *gin.Context, name string, data any) {
	state, _, _ := currentSession(c)
	c.JSON(http.StatusOK, Model{Page: name, Auth: auth.SnapshotOf(state), Data: data})
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET(guard.LoginPath, h.Login)
	for _, sector := range domain.Sectors {
		r.GET("/"+string(sector), guard.Require(guard.Rule{AllowedSectors: []domain.Sector{sector}}), h.Sector(sector))
	}

	admin := r.Group("/admin", guard.Require(adminRule))
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/users", h.Users)
	admin.GET("/users/register", h.RegisterUser)

	r.NoRoute(h.NotFound)
}

func (h *Handler) Root(c *gin.Context) {
	_, u, _ := currentSession(c)
	if u == nil {
		c.Redirect(http.StatusFound, guard.LoginPath)
		return
	}
	c.Redirect(http.StatusFound, guard.HomePath(u))
}

// Login sends users who are already signed in to their sector.
func (h *Handler) Login(c *gin.Context) {
	_, u, _ := currentSession(c)
	if u != nil {
		c.Redirect(http.StatusFound, guard.HomePath(u))
		return
	}
	render(c, "login", nil)
}

type SectorData struct {
	Sector  domain.Sector           `json:"sector"`
	CanEdit bool                    `json:"canEdit"`
	Content *content.PaginatedCards `json:"content"`
}

func (h *Handler) Sector(sector domain.Sector) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, u, token := currentSession(c)
		page, pageSize := utils.GetPaginationParams(c)
		contentType := domain.ContentType(c.Query("type"))
		if !contentType.Valid() {
			contentType = ""
		}

		cards, err := h.content.List(c.Request.Context(), u, token, content.ListQuery{
			Sector:   sector,
			Type:     contentType,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			c.Error(err)
			return
		}

		render(c, "sector", SectorData{
			Sector:  sector,
			CanEdit: permission.CanEditContent(u, sector),
			Content: cards,
		})
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	_, u, token := currentSession(c)
	summary, err := h.dashboard.Summarize(c.Request.Context(), u, token)
	if err != nil {
		c.Error(err)
		return
	}
	render(c, "admin_dashboard", summary)
}

func (h *Handler) Users(c *gin.Context) {
	_, u, token := currentSession(c)
	users, err := h.users.List(c.Request.Context(), u, token)
	if err != nil {
		c.Error(err)
		return
	}
	render(c, "admin_users", gin.H{"users": users})
}

// RegisterFormData lists the choices the register form may offer the caller.
type RegisterFormData struct {
	Roles   []domain.Role   `json:"roles"`
	Sectors []domain.Sector `json:"sectors"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	_, u, _ := currentSession(c)

	var data RegisterFormData
	for _, role := range domain.Roles {
		for _, sector := range domain.Sectors {
			if permission.CanManageUser(u, &domain.User{Role: role, Sector: sector}) {
				data.Roles = append(data.Roles, role)
				break
			}
		}
	}
	for _, sector := range domain.Sectors {
		if permission.CanAccessSector(u, sector) {
			data.Sectors = append(data.Sectors, sector)
		}
	}
	render(c, "admin_users_register", data)
}

func (h *Handler) NotFound(c *gin.Context) {
	c.Error(errors.NotFound(h.messages.PageNotFound, nil))
}
