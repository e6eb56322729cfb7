package content

import (
	stderrors "errors"
	"net/http"
	"support-portal/internal/api"
	"support-portal/internal/auth"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"support-portal/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  Service
	messages *i18n.Messages
}

func NewHandler(service Service, messages *i18n.Messages) *Handler {
	return &Handler{service: service, messages: messages}
}

type ListRequest struct {
	Sector string `form:"sector" binding:"omitempty,sector"`
	Type   string `form:"type" binding:"omitempty,contenttype"`
}

// ItemForm is the multipart body of create and update. Required text fields
// are checked by the service so the messages are localized.
type ItemForm struct {
	Title       string `form:"title"`
	Type        string `form:"type" binding:"required,contenttype"`
	Sector      string `form:"sector" binding:"required,sector"`
	Category    string `form:"category" binding:"omitempty,category"`
	Description string `form:"description"`
	TextContent string `form:"textContent"`
	Priority    *int   `form:"priority" binding:"omitempty,min=0"`
}

func (f ItemForm) input() ItemInput {
	return ItemInput{
		Title:       f.Title,
		Type:        domain.ContentType(f.Type),
		Sector:      domain.Sector(f.Sector),
		Category:    domain.Category(f.Category),
		Description: f.Description,
		TextContent: f.TextContent,
		Priority:    f.Priority,
	}
}

type AdditionForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

func viewer(c *gin.Context) (*domain.User, string) {
	ac := auth.FromGin(c)
	if ac == nil {
		return nil, ""
	}
	return ac.User(), ac.Token()
}

// withUpload opens the optional "file" part and passes it to fn.
func (h *Handler) withUpload(c *gin.Context, fn func(file *api.FileUpload)) {
	header, err := c.FormFile("file")
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			fn(nil)
			return
		}
		c.Error(errors.BadRequest(h.messages.InvalidUpload, err))
		return
	}

	f, err := header.Open()
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}
	defer f.Close()

	fn(&api.FileUpload{Name: header.Filename, Reader: f})
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user, token := viewer(c)
	page, pageSize := utils.GetPaginationParams(c)
	result, err := h.service.List(c.Request.Context(), user, token, ListQuery{
		Sector:   domain.Sector(req.Sector),
		Type:     domain.ContentType(req.Type),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Show(c *gin.Context) {
	user, token := viewer(c)
	item, err := h.service.View(c.Request.Context(), user, token, domain.ID(c.Param("id")))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) Create(c *gin.Context) {
	var form ItemForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user, token := viewer(c)
	h.withUpload(c, func(file *api.FileUpload) {
		item, err := h.service.Create(c.Request.Context(), user, token, form.input(), file)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})
}

func (h *Handler) Update(c *gin.Context) {
	var form ItemForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user, token := viewer(c)
	h.withUpload(c, func(file *api.FileUpload) {
		item, err := h.service.Update(c.Request.Context(), user, token, domain.ID(c.Param("id")), form.input(), file)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, item)
	})
}

func (h *Handler) AddAddition(c *gin.Context) {
	var form AdditionForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user, token := viewer(c)
	h.withUpload(c, func(file *api.FileUpload) {
		item, err := h.service.AddAddition(c.Request.Context(), user, token, domain.ID(c.Param("id")),
			AdditionInput{Title: form.Title, Content: form.Content}, file)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})
}

func (h *Handler) Delete(c *gin.Context) {
	user, token := viewer(c)
	if err := h.service.Delete(c.Request.Context(), user, token, domain.ID(c.Param("id"))); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Show)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/additions", h.AddAddition)
	rg.DELETE("/:id", h.Delete)
}
