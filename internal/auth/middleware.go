package auth

import (
	"net/http"
	"support-portal/internal/errors"
	"support-portal/internal/i18n"
	"support-portal/internal/session"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKey = "auth_context"

type ManagerConfig struct {
	Store         *session.Store
	Authenticator Authenticator
	Issuer        *Issuer
	Messages      *i18n.Messages
	CookieName    string
	CookieTTL     time.Duration
	SecureCookie  bool
	Logger        *zap.Logger
}

// Manager binds each request to its browser session.
type Manager struct {
	cfg ManagerConfig
}

func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{cfg: cfg}
}

// Middleware resolves the session cookie, issuing a fresh session when it is
// missing or invalid, and attaches a mounted *Context to the request.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := m.sessionID(c)
		if err != nil {
			c.Error(errors.Internal(err))
			c.Abort()
			return
		}

		ac := NewContext(sid, m.cfg.Store, m.cfg.Authenticator, m.cfg.Messages, m.cfg.Logger)
		if err := ac.Mount(c.Request.Context()); err != nil {
			m.cfg.Logger.Warn("Failed to load session", zap.String("sid", sid), zap.Error(err))
		}

		c.Set(contextKey, ac)
		c.Next()
	}
}

func (m *Manager) sessionID(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(m.cfg.CookieName); err == nil && cookie != "" {
		if sid, err := m.cfg.Issuer.VerifyJWT(cookie); err == nil {
			return sid, nil
		}
	}

	sid, token, err := m.cfg.Issuer.NewSession()
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, token, int(m.cfg.CookieTTL.Seconds()), "/", "", m.cfg.SecureCookie, true)
	return sid, nil
}

// FromGin returns the Context attached by Middleware, or nil.
func FromGin(c *gin.Context) *Context {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	ac, _ := v.(*Context)
	return ac
}

// RequireAuthenticated answers 401 for API routes when nobody is signed in.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		ac := FromGin(c)
		if ac == nil || !IsAuthenticated(ac.State()) {
			msg := i18n.Get(i18n.Portuguese).NotAuthenticated
			if ac != nil {
				msg = ac.Messages().NotAuthenticated
			}
			c.Error(errors.Unauthorized(msg, nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
