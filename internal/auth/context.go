package auth

import (
	"context"
	"fmt"
	"net/http"
	"support-portal/internal/api"
	"support-portal/internal/domain"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"support-portal/internal/session"
	"sync"

	"go.uber.org/zap"
)

// Authenticator exchanges credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
}

var _ Authenticator = (*api.Client)(nil)

// Context drives the auth state machine of a single browser session:
// Unknown → Authenticated | Anonymous. Concurrent logins on the same session
// are not serialized against each other; the last session write wins.
type Context struct {
	sid           string
	store         *session.Store
	authenticator Authenticator
	messages      *i18n.Messages
	logger        *zap.Logger

	mu    sync.RWMutex
	state State
}

func NewContext(sid string, store *session.Store, authenticator Authenticator, messages *i18n.Messages, logger *zap.Logger) *Context {
	return &Context{
		sid:           sid,
		store:         store,
		authenticator: authenticator,
		messages:      messages,
		logger:        logger.With(zap.String("component", "auth")),
		state:         Unknown{},
	}
}

func (a *Context) SessionID() string {
	return a.sid
}

func (a *Context) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *Context) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// Mount loads the persisted session. A stored user without a sector gets the
// default sector and is written back. Storage failures leave the session
// anonymous and are returned.
func (a *Context) Mount(ctx context.Context) error {
	sess, err := a.store.Load(ctx, a.sid)
	if err != nil {
		a.setState(Anonymous{})
		return err
	}
	if sess == nil || sess.Token == "" || sess.User.ID == "" {
		a.setState(Anonymous{})
		return nil
	}

	if sess.User.Sector == "" {
		sess.User.Sector = domain.DefaultSector
		if err := a.store.Save(ctx, a.sid, sess.Token, sess.User); err != nil {
			a.logger.Warn("Failed to persist repaired sector",
				zap.String("user_id", sess.User.ID.String()),
				zap.Error(err))
		}
	}

	a.setState(Authenticated{User: sess.User, Token: sess.Token})
	return nil
}

func loginMessages(m *i18n.Messages) map[int]string {
	return map[int]string{
		http.StatusBadRequest:          m.InvalidCredentials,
		http.StatusUnauthorized:        m.InvalidCredentials,
		http.StatusForbidden:           m.InvalidCredentials,
		http.StatusUnprocessableEntity: m.InvalidCredentials,
	}
}

// failLogin drops any previously stored session so the next request mounts
// anonymous, then records the error.
func (a *Context) failLogin(ctx context.Context, appErr *errors.AppError) error {
	if err := a.store.Clear(ctx, a.sid); err != nil {
		a.logger.Warn("Failed to clear session after failed login", zap.Error(err))
	}
	a.setState(Anonymous{Error: appErr.Message})
	return appErr
}

// Login makes exactly one backend call. On failure the stored session is
// cleared, the session becomes anonymous with a readable error and the error
// is returned.
func (a *Context) Login(ctx context.Context, creds api.Credentials) (*domain.User, error) {
	resp, err := a.authenticator.Login(ctx, creds)
	if err != nil {
		appErr := errors.FromStatus(api.StatusOf(err), loginMessages(a.messages), a.messages.LoginFailed, err)
		return nil, a.failLogin(ctx, appErr)
	}
	if resp.Token == "" || resp.User.ID == "" {
		return nil, a.failLogin(ctx, errors.BadGateway(a.messages.LoginFailed, fmt.Errorf("login response without token or user")))
	}

	user := resp.User
	if user.Sector == "" {
		user.Sector = domain.DefaultSector
	}
	if err := a.store.Save(ctx, a.sid, resp.Token, user); err != nil {
		return nil, a.failLogin(ctx, errors.Internal(err).WithMessage(a.messages.LoginFailed))
	}

	a.setState(Authenticated{User: user, Token: resp.Token})
	a.logger.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("sector", string(user.Sector)))
	return &user, nil
}

// Logout forgets the session locally. The backend is not contacted and the
// state is anonymous even when clearing storage fails.
func (a *Context) Logout(ctx context.Context) error {
	a.setState(Anonymous{})
	if err := a.store.Clear(ctx, a.sid); err != nil {
		a.logger.Warn("Failed to clear session", zap.Error(err))
		return err
	}
	return nil
}

// Token returns the backend token of an authenticated session.
func (a *Context) Token() string {
	if st, ok := a.State().(Authenticated); ok {
		return st.Token
	}
	return ""
}

func (a *Context) User() *domain.User {
	return CurrentUser(a.State())
}

func (a *Context) Messages() *i18n.Messages {
	return a.messages
}
