package auth

import (
	"net/http"
	"support-portal/internal/api"
	"support-portal/internal/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// FormLogin represents login form data
type FormLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	ac := FromGin(c)
	if _, err := ac.Login(c.Request.Context(), api.Credentials{Email: form.Email, Password: form.Password}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SnapshotOf(ac.State()))
}

// Logout always succeeds from the client's point of view.
func (h *Handler) Logout(c *gin.Context) {
	_ = FromGin(c).Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, SnapshotOf(FromGin(c).State()))
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/state", h.State)
}
