// Package dashboard aggregates the content an admin can see into the
// numbers shown on /admin/dashboard.
package dashboard

import (
	"cmp"
	"context"
	"net/http"
	"slices"
	"support-portal/internal/api"
	"support-portal/internal/auth"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"support-portal/internal/permission"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const topViewedLimit = 5

type Lister interface {
	ListContent(ctx context.Context, token string, filter api.ContentFilter) ([]domain.ContentItem, error)
}

type TopItem struct {
	ID     domain.ID     `json:"id"`
	Title  string        `json:"title"`
	Sector domain.Sector `json:"sector"`
	Views  int           `json:"views"`
}

type Summary struct {
	Total               int                        `json:"total"`
	BySector            map[domain.Sector]int      `json:"bySector"`
	ByType              map[domain.ContentType]int `json:"byType"`
	TotalViews          int                        `json:"totalViews"`
	WithRecentAdditions int                        `json:"withRecentAdditions"`
	TopViewed           []TopItem                  `json:"topViewed"`
}

type Service struct {
	lister   Lister
	messages *i18n.Messages
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(lister Lister, messages *i18n.Messages, logger *zap.Logger) *Service {
	return &Service{
		lister:   lister,
		messages: messages,
		logger:   logger.With(zap.String("component", "dashboard")),
		now:      time.Now,
	}
}

// Summarize covers every sector for a super_admin and the admin's own sector
// otherwise.
func (s *Service) Summarize(ctx context.Context, viewer *domain.User, token string) (*Summary, error) {
	if !permission.IsAdmin(viewer) {
		return nil, errors.Forbidden(s.messages.NoSectorAccess, nil)
	}

	var filter api.ContentFilter
	if !permission.IsSuperAdmin(viewer) {
		filter.Sector = viewer.Sector
	}
	items, err := s.lister.ListContent(ctx, token, filter)
	if err != nil {
		return nil, errors.FromStatus(api.StatusOf(err), map[int]string{
			http.StatusUnauthorized: s.messages.SessionExpired,
		}, s.messages.LoadContentFailed, err)
	}

	return s.summarize(viewer, items), nil
}

func (s *Service) summarize(viewer *domain.User, items []domain.ContentItem) *Summary {
	now := s.now()
	summary := &Summary{
		BySector:  make(map[domain.Sector]int, len(domain.Sectors)),
		ByType:    make(map[domain.ContentType]int, len(domain.ContentTypes)),
		TopViewed: []TopItem{},
	}
	for _, sector := range domain.Sectors {
		if permission.CanAccessSector(viewer, sector) {
			summary.BySector[sector] = 0
		}
	}

	visible := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if !permission.CanAccessSector(viewer, item.Sector) {
			continue
		}
		visible = append(visible, item)

		summary.Total++
		summary.BySector[item.Sector]++
		summary.ByType[item.Type]++
		summary.TotalViews += item.Views

		steps, err := domain.ParseSteps(item.Steps)
		if err != nil {
			s.logger.Warn("Ignoring unreadable steps", zap.String("content_id", item.ID.String()), zap.Error(err))
		}
		if slices.ContainsFunc(steps.Additions, func(a domain.ContentAddition) bool {
			return domain.IsRecent(a.CreatedAt, now)
		}) {
			summary.WithRecentAdditions++
		}
	}

	slices.SortStableFunc(visible, func(a, b domain.ContentItem) int {
		return cmp.Compare(b.Views, a.Views)
	})
	for _, item := range visible[:min(topViewedLimit, len(visible))] {
		summary.TopViewed = append(summary.TopViewed, TopItem{ID: item.ID, Title: item.Title, Sector: item.Sector, Views: item.Views})
	}
	return summary
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Show(c *gin.Context) {
	ac := auth.FromGin(c)
	if ac == nil {
		c.Error(errors.Unauthorized(h.service.messages.NotAuthenticated, nil))
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), ac.User(), ac.Token())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
