package user

import (
	"context"
	"net/http"
	"support-portal/internal/api"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockBackend) CreateUser(ctx context.Context, token string, payload api.UserPayload) (*domain.User, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockBackend) UpdateUser(ctx context.Context, token string, id domain.ID, payload api.UserPayload) (*domain.User, error) {
	args := m.Called(ctx, token, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockBackend) DeleteUser(ctx context.Context, token string, id domain.ID) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

var (
	root      = &domain.User{ID: "1", Role: domain.RoleSuperAdmin, Sector: domain.SectorAdm}
	nocAdmin  = &domain.User{ID: "2", Role: domain.RoleAdmin, Sector: domain.SectorNOC}
	plainUser = &domain.User{ID: "3", Role: domain.RoleUser, Sector: domain.SectorNOC}
	directory = []domain.User{
		{ID: "1", Name: "Root", Role: domain.RoleSuperAdmin, Sector: domain.SectorAdm},
		{ID: "2", Name: "Ana", Role: domain.RoleAdmin, Sector: domain.SectorNOC},
		{ID: "3", Name: "Bia", Role: domain.RoleUser, Sector: domain.SectorNOC},
		{ID: "4", Name: "Caio", Role: domain.RoleUser, Sector: domain.SectorComercial},
	}
	msgs = i18n.Get(i18n.Portuguese)
)

func newService(backend Backend) *DefaultService {
	return NewService(backend, msgs, zap.NewNop())
}

func codeOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := errors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestList_AdminSeesOwnSector(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListUsers", mock.Anything, "tok").Return(directory, nil)

	users, err := newService(backend).List(context.Background(), nocAdmin, "tok")

	require.NoError(t, err)
	var names []string
	for _, u := range users {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"Ana", "Bia"}, names)
}

func TestList_SuperAdminSeesAll(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListUsers", mock.Anything, "tok").Return(directory, nil)

	users, err := newService(backend).List(context.Background(), root, "tok")

	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestList_PlainUserForbidden(t *testing.T) {
	backend := new(MockBackend)

	_, err := newService(backend).List(context.Background(), plainUser, "tok")

	assert.Equal(t, http.StatusForbidden, codeOf(t, err))
	_, err = newService(backend).List(context.Background(), nil, "")
	assert.Equal(t, http.StatusUnauthorized, codeOf(t, err))
}

func TestRegister(t *testing.T) {
	backend := new(MockBackend)
	ok := api.UserPayload{Name: "Dan", Email: "d@example.com", Password: "secret1", Role: domain.RoleUser, Sector: domain.SectorNOC}
	backend.On("CreateUser", mock.Anything, "tok", ok).Return(&domain.User{ID: "9", Role: domain.RoleUser}, nil)
	service := newService(backend)

	created, err := service.Register(context.Background(), nocAdmin, "tok", ok)
	require.NoError(t, err)
	assert.Equal(t, domain.ID("9"), created.ID)

	foreign := ok
	foreign.Sector = domain.SectorTecnico
	_, err = service.Register(context.Background(), nocAdmin, "tok", foreign)
	assert.Equal(t, http.StatusForbidden, codeOf(t, err))

	promoted := ok
	promoted.Role = domain.RoleSuperAdmin
	_, err = service.Register(context.Background(), nocAdmin, "tok", promoted)
	appErr, _ := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, msgs.RoleNotAssignable, appErr.Message)

	backend.AssertNumberOfCalls(t, "CreateUser", 1)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	backend := new(MockBackend)
	backend.On("CreateUser", mock.Anything, "tok", mock.Anything).Return(nil, &api.StatusError{Status: http.StatusConflict})

	_, err := newService(backend).Register(context.Background(), root, "tok", api.UserPayload{Role: domain.RoleUser, Sector: domain.SectorNOC})

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, msgs.EmailTaken, appErr.Message)
}

func TestUpdate_AdminCannotTouchForeignUser(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListUsers", mock.Anything, "tok").Return(directory, nil)

	_, err := newService(backend).Update(context.Background(), nocAdmin, "tok", "4",
		api.UserPayload{Name: "Caio", Role: domain.RoleUser, Sector: domain.SectorNOC})

	assert.Equal(t, http.StatusForbidden, codeOf(t, err))
	backend.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_Success(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListUsers", mock.Anything, "tok").Return(directory, nil)
	payload := api.UserPayload{Name: "Bia S", Role: domain.RoleAdmin, Sector: domain.SectorNOC}
	backend.On("UpdateUser", mock.Anything, "tok", domain.ID("3"), payload).Return(&domain.User{ID: "3", Name: "Bia S"}, nil)

	updated, err := newService(backend).Update(context.Background(), nocAdmin, "tok", "3", payload)

	require.NoError(t, err)
	assert.Equal(t, "Bia S", updated.Name)
}

func TestDelete_UnknownUser(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListUsers", mock.Anything, "tok").Return(directory, nil)

	err := newService(backend).Delete(context.Background(), root, "tok", "99")

	assert.Equal(t, http.StatusNotFound, codeOf(t, err))
}

func TestDelete_Success(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListUsers", mock.Anything, "tok").Return(directory, nil)
	backend.On("DeleteUser", mock.Anything, "tok", domain.ID("3")).Return(nil)

	require.NoError(t, newService(backend).Delete(context.Background(), nocAdmin, "tok", "3"))
	backend.AssertExpectations(t)
}
