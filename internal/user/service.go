package user

import (
	"context"
	"net/http"
	"support-portal/internal/api"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"support-portal/internal/permission"

	"go.uber.org/zap"
)

// Backend is the user part of the REST client.
type Backend interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	CreateUser(ctx context.Context, token string, payload api.UserPayload) (*domain.User, error)
	UpdateUser(ctx context.Context, token string, id domain.ID, payload api.UserPayload) (*domain.User, error)
	DeleteUser(ctx context.Context, token string, id domain.ID) error
}

var _ Backend = (*api.Client)(nil)

// Service defines the interface for user management
type Service interface {
	List(ctx context.Context, actor *domain.User, token string) ([]domain.User, error)
	Register(ctx context.Context, actor *domain.User, token string, in api.UserPayload) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, token string, id domain.ID, in api.UserPayload) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, token string, id domain.ID) error
}

// DefaultService implements Service. A super_admin manages everyone; an admin
// manages the non-super_admin users of their own sector.
type DefaultService struct {
	backend  Backend
	messages *i18n.Messages
	logger   *zap.Logger
}

func NewService(backend Backend, messages *i18n.Messages, logger *zap.Logger) *DefaultService {
	return &DefaultService{
		backend:  backend,
		messages: messages,
		logger:   logger.With(zap.String("component", "user")),
	}
}

func (s *DefaultService) backendError(err error, fallback string) *errors.AppError {
	return errors.FromStatus(api.StatusOf(err), map[int]string{
		http.StatusUnauthorized: s.messages.SessionExpired,
		http.StatusForbidden:    s.messages.NoUserPermission,
		http.StatusNotFound:     s.messages.UserNotFound,
		http.StatusConflict:     s.messages.EmailTaken,
	}, fallback, err)
}

func (s *DefaultService) requireAdmin(actor *domain.User) error {
	if actor == nil {
		return errors.Unauthorized(s.messages.NotAuthenticated, nil)
	}
	if !permission.IsAdmin(actor) {
		return errors.Forbidden(s.messages.NoUserPermission, nil)
	}
	return nil
}

// checkTarget explains why actor may not manage target, if it may not.
func (s *DefaultService) checkTarget(actor, target *domain.User) error {
	if permission.CanManageUser(actor, target) {
		return nil
	}
	if target.Role == domain.RoleSuperAdmin {
		return errors.Forbidden(s.messages.RoleNotAssignable, nil)
	}
	return errors.Forbidden(s.messages.NoUserPermission, nil)
}

func (s *DefaultService) List(ctx context.Context, actor *domain.User, token string) ([]domain.User, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := s.backend.ListUsers(ctx, token)
	if err != nil {
		return nil, s.backendError(err, s.messages.LoadUsersFailed)
	}

	visible := make([]domain.User, 0, len(users))
	for i := range users {
		if permission.CanManageUser(actor, &users[i]) {
			visible = append(visible, users[i])
		}
	}
	return visible, nil
}

func (s *DefaultService) Register(ctx context.Context, actor *domain.User, token string, in api.UserPayload) (*domain.User, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.checkTarget(actor, &domain.User{Role: in.Role, Sector: in.Sector}); err != nil {
		return nil, err
	}

	created, err := s.backend.CreateUser(ctx, token, in)
	if err != nil {
		return nil, s.backendError(err, s.messages.SaveUserFailed)
	}

	s.logger.Info("User registered",
		zap.String("user_id", created.ID.String()),
		zap.String("role", string(created.Role)),
		zap.String("by", actor.ID.String()))
	return created, nil
}

// find looks id up in the user listing; the backend has no single-user read.
func (s *DefaultService) find(ctx context.Context, token string, id domain.ID) (*domain.User, error) {
	users, err := s.backend.ListUsers(ctx, token)
	if err != nil {
		return nil, s.backendError(err, s.messages.LoadUsersFailed)
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, errors.NotFound(s.messages.UserNotFound, nil)
}

// Update requires rights over the user both as stored and as changed.
func (s *DefaultService) Update(ctx context.Context, actor *domain.User, token string, id domain.ID, in api.UserPayload) (*domain.User, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.find(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTarget(actor, current); err != nil {
		return nil, err
	}
	if err := s.checkTarget(actor, &domain.User{Role: in.Role, Sector: in.Sector}); err != nil {
		return nil, err
	}

	updated, err := s.backend.UpdateUser(ctx, token, id, in)
	if err != nil {
		return nil, s.backendError(err, s.messages.SaveUserFailed)
	}
	return updated, nil
}

func (s *DefaultService) Delete(ctx context.Context, actor *domain.User, token string, id domain.ID) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}

	target, err := s.find(ctx, token, id)
	if err != nil {
		return err
	}
	if err := s.checkTarget(actor, target); err != nil {
		return err
	}

	if err := s.backend.DeleteUser(ctx, token, id); err != nil {
		return s.backendError(err, s.messages.DeleteUserFailed)
	}

	s.logger.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("by", actor.ID.String()))
	return nil
}
