package auth

import "support-portal/internal/domain"

// State is the authentication state of one browser session. It is one of
// Unknown, Anonymous or Authenticated.
type State interface {
	isState()
}

// Unknown is the state before the session has been mounted.
type Unknown struct{}

// Anonymous carries the message of the last failed login, if any.
type Anonymous struct {
	Error string
}

type Authenticated struct {
	User  domain.User
	Token string
}

func (Unknown) isState()       {}
func (Anonymous) isState()     {}
func (Authenticated) isState() {}

func IsAuthenticated(s State) bool {
	_, ok := s.(Authenticated)
	return ok
}

// CurrentUser returns the signed-in user or nil.
func CurrentUser(s State) *domain.User {
	if a, ok := s.(Authenticated); ok {
		user := a.User
		return &user
	}
	return nil
}

// Snapshot is the flat view of a State handed to clients.
type Snapshot struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`
}

func SnapshotOf(s State) Snapshot {
	switch st := s.(type) {
	case Authenticated:
		return Snapshot{User: CurrentUser(st), IsAuthenticated: true}
	case Anonymous:
		return Snapshot{Error: st.Error}
	default:
		return Snapshot{Loading: true}
	}
}
