package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"support-portal/internal/api"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListContent(ctx context.Context, token string, filter api.ContentFilter) ([]domain.ContentItem, error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContentItem), args.Error(1)
}

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newService(lister Lister) *Service {
	s := NewService(lister, i18n.Get(i18n.Portuguese), zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func fixtures() []domain.ContentItem {
	recent, _ := json.Marshal(domain.ContentSteps{Additions: []domain.ContentAddition{{ID: "a", CreatedAt: now.Add(-time.Hour)}}})
	items := []domain.ContentItem{
		{ID: "1", Title: "Fibra", Sector: domain.SectorNOC, Type: domain.TypeText, Views: 40, Steps: recent},
		{ID: "2", Title: "Roteador", Sector: domain.SectorNOC, Type: domain.TypeVideo, Views: 10},
		{ID: "3", Title: "Planos", Sector: domain.SectorComercial, Type: domain.TypePhoto, Views: 70},
		{ID: "4", Title: "Corrupt", Sector: domain.SectorNOC, Type: domain.TypeText, Views: 5, Steps: json.RawMessage(`"{"`)},
	}
	for i := 5; i <= 8; i++ {
		items = append(items, domain.ContentItem{ID: domain.ID(strconv.Itoa(i)), Sector: domain.SectorSuporte, Type: domain.TypeTitle, Views: i})
	}
	return items
}

func TestSummarize_SuperAdmin(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListContent", mock.Anything, "tok", api.ContentFilter{}).Return(fixtures(), nil)
	root := &domain.User{ID: "1", Role: domain.RoleSuperAdmin, Sector: domain.SectorAdm}

	summary, err := newService(lister).Summarize(context.Background(), root, "tok")

	require.NoError(t, err)
	assert.Equal(t, 8, summary.Total)
	assert.Equal(t, 3, summary.BySector[domain.SectorNOC])
	assert.Equal(t, 0, summary.BySector[domain.SectorAdm])
	assert.Len(t, summary.BySector, len(domain.Sectors))
	assert.Equal(t, 2, summary.ByType[domain.TypeText])
	assert.Equal(t, 40+10+70+5+5+6+7+8, summary.TotalViews)
	assert.Equal(t, 1, summary.WithRecentAdditions)
	require.Len(t, summary.TopViewed, 5)
	assert.Equal(t, domain.ID("3"), summary.TopViewed[0].ID)
	assert.Equal(t, domain.ID("1"), summary.TopViewed[1].ID)
}

func TestSummarize_AdminOwnSectorOnly(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListContent", mock.Anything, "tok", api.ContentFilter{Sector: domain.SectorNOC}).Return(fixtures(), nil)
	admin := &domain.User{ID: "2", Role: domain.RoleAdmin, Sector: domain.SectorNOC}

	summary, err := newService(lister).Summarize(context.Background(), admin, "tok")

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, map[domain.Sector]int{domain.SectorNOC: 3}, summary.BySector)
}

func TestSummarize_Errors(t *testing.T) {
	lister := new(MockLister)
	lister.On("ListContent", mock.Anything, "tok", mock.Anything).Return(nil, &api.StatusError{Status: http.StatusUnauthorized})
	service := newService(lister)

	_, err := service.Summarize(context.Background(), &domain.User{Role: domain.RoleUser, Sector: domain.SectorNOC}, "tok")
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Code)

	_, err = service.Summarize(context.Background(), &domain.User{Role: domain.RoleAdmin, Sector: domain.SectorNOC}, "tok")
	appErr, ok = errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}
