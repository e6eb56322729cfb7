package session

import (
	"context"
	"encoding/json"
	"fmt"
	"support-portal/internal/domain"

	"go.uber.org/zap"
)

// Keys of the two items kept per browser session.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Session is the persisted pair of backend token and user profile.
type Session struct {
	Token string
	User  domain.User
}

// Store persists sessions in a Storage, namespacing both keys by the browser
// session id.
type Store struct {
	storage Storage
	logger  *zap.Logger
}

func NewStore(storage Storage, logger *zap.Logger) *Store {
	return &Store{storage: storage, logger: logger.With(zap.String("component", "session"))}
}

func key(sid, name string) string {
	return sid + ":" + name
}

// Save writes token and user. Both writes are attempted; a failure of either
// is returned and the caller must treat the login as failed.
func (s *Store) Save(ctx context.Context, sid, token string, user domain.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.storage.SetItem(ctx, key(sid, TokenKey), token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	if err := s.storage.SetItem(ctx, key(sid, UserKey), string(encoded)); err != nil {
		return fmt.Errorf("save session user: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when either key is absent. A user
// record that does not decode is removed together with the token and reported
// as no session.
func (s *Store) Load(ctx context.Context, sid string) (*Session, error) {
	token, ok, err := s.storage.GetItem(ctx, key(sid, TokenKey))
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}
	if !ok {
		return nil, nil
	}

	raw, ok, err := s.storage.GetItem(ctx, key(sid, UserKey))
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("discarding corrupt session", zap.String("sid", sid), zap.Error(err))
		if clearErr := s.Clear(ctx, sid); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}

	return &Session{Token: token, User: user}, nil
}

// Clear removes both keys whether or not they exist.
func (s *Store) Clear(ctx context.Context, sid string) error {
	if err := s.storage.RemoveItem(ctx, key(sid, TokenKey), key(sid, UserKey)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
