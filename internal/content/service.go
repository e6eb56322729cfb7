package content

import (
	"cmp"
	"context"
	"net/http"
	"slices"
	"strings"
	"support-portal/internal/api"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"support-portal/internal/permission"
	"support-portal/internal/structure"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend is the part of the REST client the content service needs.
type Backend interface {
	ListContent(ctx context.Context, token string, filter api.ContentFilter) ([]domain.ContentItem, error)
	GetContent(ctx context.Context, token string, id domain.ID) (*domain.ContentItem, error)
	CreateContent(ctx context.Context, token string, payload api.ContentPayload, file *api.FileUpload) (*domain.ContentItem, error)
	UpdateContent(ctx context.Context, token string, id domain.ID, payload api.ContentPayload, file *api.FileUpload) (*domain.ContentItem, error)
	AppendAdditions(ctx context.Context, token string, id domain.ID, steps domain.ContentSteps, file *api.FileUpload) (*domain.ContentItem, error)
	DeleteContent(ctx context.Context, token string, id domain.ID) error
	ResolveFileURL(path string) string
}

var _ Backend = (*api.Client)(nil)

type Service interface {
	List(ctx context.Context, viewer *domain.User, token string, q ListQuery) (*PaginatedCards, error)
	View(ctx context.Context, viewer *domain.User, token string, id domain.ID) (*ItemView, error)
	Create(ctx context.Context, viewer *domain.User, token string, in ItemInput, file *api.FileUpload) (*ItemView, error)
	Update(ctx context.Context, viewer *domain.User, token string, id domain.ID, in ItemInput, file *api.FileUpload) (*ItemView, error)
	AddAddition(ctx context.Context, viewer *domain.User, token string, id domain.ID, in AdditionInput, file *api.FileUpload) (*ItemView, error)
	Delete(ctx context.Context, viewer *domain.User, token string, id domain.ID) error
}

type DefaultService struct {
	backend  Backend
	messages *i18n.Messages
	labels   structure.Labels
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(backend Backend, messages *i18n.Messages, logger *zap.Logger) *DefaultService {
	return &DefaultService{
		backend:  backend,
		messages: messages,
		labels:   labelsFor(messages),
		logger:   logger.With(zap.String("component", "content")),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func labelsFor(m *i18n.Messages) structure.Labels {
	return structure.Labels{
		Content:      m.ContentLabel,
		Introduction: m.IntroductionLabel,
		Procedure:    m.ProcedureLabel,
		Step:         m.StepLabel,
		Part:         m.PartLabel,
		Conclusion:   m.ConclusionLabel,
	}
}

func (s *DefaultService) loadError(err error) *errors.AppError {
	return errors.FromStatus(api.StatusOf(err), map[int]string{
		http.StatusUnauthorized: s.messages.SessionExpired,
		http.StatusForbidden:    s.messages.NoSectorAccess,
		http.StatusNotFound:     s.messages.ContentNotFound,
	}, s.messages.LoadContentFailed, err)
}

func (s *DefaultService) saveError(err error) *errors.AppError {
	return errors.FromStatus(api.StatusOf(err), map[int]string{
		http.StatusUnauthorized: s.messages.SessionExpired,
		http.StatusForbidden:    s.messages.NoEditPermission,
		http.StatusNotFound:     s.messages.ContentNotFound,
	}, s.messages.SaveContentFailed, err)
}

func (s *DefaultService) deleteError(err error) *errors.AppError {
	return errors.FromStatus(api.StatusOf(err), map[int]string{
		http.StatusUnauthorized:        s.messages.DeleteUnauthorized,
		http.StatusForbidden:           s.messages.DeleteForbidden,
		http.StatusNotFound:            s.messages.DeleteNotFound,
		http.StatusInternalServerError: s.messages.DeleteServerError,
	}, s.messages.DeleteFailed, err)
}

func (s *DefaultService) requireViewer(viewer *domain.User) error {
	if viewer == nil {
		return errors.Unauthorized(s.messages.NotAuthenticated, nil)
	}
	return nil
}

// List returns the cards visible to viewer, highest priority first. Anyone
// but a super_admin only sees their own sector.
func (s *DefaultService) List(ctx context.Context, viewer *domain.User, token string, q ListQuery) (*PaginatedCards, error) {
	if err := s.requireViewer(viewer); err != nil {
		return nil, err
	}
	if q.Sector == "" && !permission.IsSuperAdmin(viewer) {
		q.Sector = viewer.Sector
	}
	if q.Sector != "" && !permission.CanAccessSector(viewer, q.Sector) {
		return nil, errors.Forbidden(s.messages.NoSectorAccess, nil)
	}

	items, err := s.backend.ListContent(ctx, token, api.ContentFilter{Sector: q.Sector, Type: q.Type})
	if err != nil {
		return nil, s.loadError(err)
	}

	visible := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if q.Sector != "" && item.Sector != q.Sector {
			continue
		}
		visible = append(visible, item)
	}
	slices.SortStableFunc(visible, func(a, b domain.ContentItem) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	page, pageSize := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	total := len(visible)
	start := total
	if page-1 < total/pageSize+1 {
		start = min((page-1)*pageSize, total)
	}
	end := min(start+pageSize, total)

	cards := make([]Card, 0, end-start)
	for i := range visible[start:end] {
		cards = append(cards, s.card(&visible[start+i]))
	}

	return &PaginatedCards{
		Data: cards,
		Meta: ListMeta{
			Total:       int64(total),
			CurrentPage: page,
			PerPage:     pageSize,
			TotalPage:   (total + pageSize - 1) / pageSize,
		},
	}, nil
}

func (s *DefaultService) card(item *domain.ContentItem) Card {
	now := s.now()
	hasRecent := false
	for _, a := range s.steps(item).Additions {
		if domain.IsRecent(a.CreatedAt, now) {
			hasRecent = true
			break
		}
	}

	return Card{
		ID:                 item.ID,
		Type:               item.Type,
		Category:           domain.InferCategory(item),
		Sector:             item.Sector,
		Title:              item.Title,
		Description:        item.Description,
		Priority:           item.Priority,
		Views:              item.Views,
		FileURL:            s.backend.ResolveFileURL(item.FilePath),
		CreatorName:        item.CreatorName(),
		HasRecentAdditions: hasRecent,
		CreatedAt:          item.CreatedAt,
	}
}

// steps never fails: unreadable steps are logged and read as no additions.
func (s *DefaultService) steps(item *domain.ContentItem) domain.ContentSteps {
	steps, err := domain.ParseSteps(item.Steps)
	if err != nil {
		s.logger.Warn("Ignoring unreadable steps",
			zap.String("content_id", item.ID.String()),
			zap.Error(err))
	}
	return steps
}

func (s *DefaultService) View(ctx context.Context, viewer *domain.User, token string, id domain.ID) (*ItemView, error) {
	if err := s.requireViewer(viewer); err != nil {
		return nil, err
	}

	item, err := s.backend.GetContent(ctx, token, id)
	if err != nil {
		return nil, s.loadError(err)
	}
	if !permission.CanAccessSector(viewer, item.Sector) {
		return nil, errors.Forbidden(s.messages.NoSectorAccess, nil)
	}
	return s.view(viewer, item), nil
}

func (s *DefaultService) view(viewer *domain.User, item *domain.ContentItem) *ItemView {
	now := s.now()
	steps := s.steps(item)

	additions := make([]AdditionView, 0, len(steps.Additions))
	for _, a := range steps.Additions {
		additions = append(additions, AdditionView{
			ID:            a.ID,
			Title:         a.Title,
			Content:       a.Content,
			Blocks:        structure.StructureWith(a.Content, s.labels),
			FileURL:       s.backend.ResolveFileURL(a.FilePath),
			CreatedAt:     a.CreatedAt,
			CreatedByName: a.CreatedByName,
			Recent:        domain.IsRecent(a.CreatedAt, now),
		})
	}

	var images []string
	for _, path := range item.Images {
		images = append(images, s.backend.ResolveFileURL(path))
	}

	var updater string
	if item.Updater != nil {
		updater = item.Updater.Name
	}

	return &ItemView{
		ID:          item.ID,
		Type:        item.Type,
		Category:    domain.InferCategory(item),
		Sector:      item.Sector,
		Title:       item.Title,
		Description: item.Description,
		TextContent: item.TextContent,
		Blocks:      structure.StructureWith(item.TextContent, s.labels),
		FileURL:     s.backend.ResolveFileURL(item.FilePath),
		ImageURLs:   images,
		Priority:    item.Priority,
		Complexity:  item.Complexity,
		Views:       item.Views,
		CreatorName: item.CreatorName(),
		UpdaterName: updater,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Additions:   additions,
		CanEdit:     permission.CanEditContent(viewer, item.Sector),
	}
}

// validate runs before any network call. A file is only mandatory when
// creating a photo or video.
func (s *DefaultService) validate(in ItemInput, creating bool, file *api.FileUpload) error {
	if !in.Type.Valid() || !in.Sector.Valid() || (in.Category != "" && !in.Category.Valid()) {
		return errors.BadRequest(s.messages.InvalidInput, nil)
	}
	if strings.TrimSpace(in.Title) == "" {
		return errors.FieldError("title", s.messages.TitleRequired)
	}
	if in.Type.RequiresText() && strings.TrimSpace(in.TextContent) == "" {
		return errors.FieldError("textContent", s.messages.TextRequired)
	}
	if creating && in.Type.RequiresFile() && file == nil {
		return errors.FieldError("file", s.messages.FileRequired)
	}
	return nil
}

func payloadOf(in ItemInput) api.ContentPayload {
	return api.ContentPayload{
		Title:       strings.TrimSpace(in.Title),
		Type:        in.Type,
		Sector:      in.Sector,
		Category:    in.Category,
		Description: in.Description,
		TextContent: in.TextContent,
		Priority:    in.Priority,
	}
}

func (s *DefaultService) Create(ctx context.Context, viewer *domain.User, token string, in ItemInput, file *api.FileUpload) (*ItemView, error) {
	if err := s.requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := s.validate(in, true, file); err != nil {
		return nil, err
	}
	if !permission.CanEditContent(viewer, in.Sector) {
		return nil, errors.Forbidden(s.messages.NoEditPermission, nil)
	}

	item, err := s.backend.CreateContent(ctx, token, payloadOf(in), file)
	if err != nil {
		return nil, s.saveError(err)
	}

	s.logger.Info("Content created",
		zap.String("content_id", item.ID.String()),
		zap.String("sector", string(item.Sector)),
		zap.String("user_id", viewer.ID.String()))
	return s.view(viewer, item), nil
}

// Update needs edit rights on both the stored sector and the target sector,
// so an admin cannot move an item out of or into a foreign sector.
func (s *DefaultService) Update(ctx context.Context, viewer *domain.User, token string, id domain.ID, in ItemInput, file *api.FileUpload) (*ItemView, error) {
	if err := s.requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := s.validate(in, false, file); err != nil {
		return nil, err
	}

	current, err := s.backend.GetContent(ctx, token, id)
	if err != nil {
		return nil, s.loadError(err)
	}
	if !permission.CanEditContent(viewer, current.Sector) || !permission.CanEditContent(viewer, in.Sector) {
		return nil, errors.Forbidden(s.messages.NoEditPermission, nil)
	}

	item, err := s.backend.UpdateContent(ctx, token, id, payloadOf(in), file)
	if err != nil {
		return nil, s.saveError(err)
	}
	return s.view(viewer, item), nil
}

// AddAddition appends to steps.additions and leaves textContent alone.
func (s *DefaultService) AddAddition(ctx context.Context, viewer *domain.User, token string, id domain.ID, in AdditionInput, file *api.FileUpload) (*ItemView, error) {
	if err := s.requireViewer(viewer); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, errors.FieldError("content", s.messages.AdditionEmpty)
	}

	item, err := s.backend.GetContent(ctx, token, id)
	if err != nil {
		return nil, s.loadError(err)
	}
	if !permission.CanEditContent(viewer, item.Sector) {
		return nil, errors.Forbidden(s.messages.NoEditPermission, nil)
	}

	steps := s.steps(item).Append(domain.ContentAddition{
		ID:            s.newID(),
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		CreatedAt:     s.now().UTC(),
		CreatedByName: viewer.Name,
	})

	updated, err := s.backend.AppendAdditions(ctx, token, id, steps, file)
	if err != nil {
		return nil, s.saveError(err)
	}
	return s.view(viewer, updated), nil
}

// Delete is not idempotent: a second delete of the same id reports the item
// as already deleted.
func (s *DefaultService) Delete(ctx context.Context, viewer *domain.User, token string, id domain.ID) error {
	if err := s.requireViewer(viewer); err != nil {
		return err
	}

	item, err := s.backend.GetContent(ctx, token, id)
	if err != nil {
		return s.deleteError(err)
	}
	if !permission.CanEditContent(viewer, item.Sector) {
		return errors.Forbidden(s.messages.DeleteForbidden, nil)
	}

	if err := s.backend.DeleteContent(ctx, token, id); err != nil {
		return s.deleteError(err)
	}

	s.logger.Info("Content deleted",
		zap.String("content_id", id.String()),
		zap.String("user_id", viewer.ID.String()))
	return nil
}
