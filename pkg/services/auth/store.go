package auth

import (
	"sync"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
)

// userStore is an in-memory user registry with an email uniqueness index.
type userStore struct {
	mu      sync.RWMutex
	byIDMap map[string]domain.User
	emails  map[string]string // email -> user ID
}

func newUserStore() *userStore {
	return &userStore{
		byIDMap: make(map[string]domain.User),
		emails:  make(map[string]string),
	}
}

func (s *userStore) add(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return ErrEmailTaken
	}
	s.byIDMap[user.ID] = user
	s.emails[user.Email] = user.ID
	return nil
}

func (s *userStore) byID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byIDMap[id]
	return user, ok
}

func (s *userStore) byEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return domain.User{}, false
	}
	return s.byIDMap[id], true
}
