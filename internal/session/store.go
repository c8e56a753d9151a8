package session

import (
	"sync"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"go.uber.org/zap"
)

// Session is the authenticated pair produced by login or registration. It
// has no expiry and no refresh; it lives until replaced or cleared.
type Session struct {
	User  api.User
	Token string
}

// Store holds the single active session. It is injected into every flow
// that needs authentication instead of re-serializing the pair through
// navigation parameters.
type Store struct {
	mu      sync.Mutex
	current *Session
	logger  *zap.SugaredLogger
}

func NewStore(logger *zap.SugaredLogger) *Store {
	return &Store{logger: logger}
}

// Set replaces any prior session with the given pair.
func (s *Store) Set(user api.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{User: user, Token: token}
	s.logger.Infow("session established", "user_id", user.ID, "user_type", user.UserType)
}

// Current returns the active session, or false when nobody is logged in.
func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token returns the bearer credential for authenticated calls, empty when
// there is no session. Callers must treat an empty token as "skip the call".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// UserType reports the active user's type for home-screen branching.
func (s *Store) UserType() (api.UserType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", false
	}
	return s.current.User.UserType, true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.logger.Infow("session cleared", "user_id", s.current.User.ID)
	}
	s.current = nil
}
