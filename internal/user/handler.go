package user

import (
	"net/http"
	"support-portal/internal/api"
	"support-portal/internal/auth"
	"support-portal/internal/domain"
	"support-portal/internal/errors"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for user management
type Handler struct {
	service Service
}

// NewHandler creates a new user handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// FormRegister represents registration form data
type FormRegister struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,role"`
	Sector   string `json:"sector" binding:"required,sector"`
}

// FormUpdate is FormRegister with an optional password
type FormUpdate struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"required,role"`
	Sector   string `json:"sector" binding:"required,sector"`
	IsActive *bool  `json:"isActive"`
}

func actor(c *gin.Context) (*domain.User, string) {
	ac := auth.FromGin(c)
	if ac == nil {
		return nil, ""
	}
	return ac.User(), ac.Token()
}

// List handles listing the users the caller may manage
func (h *Handler) List(c *gin.Context) {
	user, token := actor(c)
	users, err := h.service.List(c.Request.Context(), user, token)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var form FormRegister
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	active := true
	user, token := actor(c)
	created, err := h.service.Register(c.Request.Context(), user, token, api.UserPayload{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     domain.Role(form.Role),
		Sector:   domain.Sector(form.Sector),
		IsActive: &active,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Update(c *gin.Context) {
	var form FormUpdate
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user, token := actor(c)
	updated, err := h.service.Update(c.Request.Context(), user, token, domain.ID(c.Param("id")), api.UserPayload{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     domain.Role(form.Role),
		Sector:   domain.Sector(form.Sector),
		IsActive: form.IsActive,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	user, token := actor(c)
	if err := h.service.Delete(c.Request.Context(), user, token, domain.ID(c.Param("id"))); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Register)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
