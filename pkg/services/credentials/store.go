// Package credentials owns the per-principal AWS credential bindings. A
// binding belongs to exactly one principal; replace and delete are the only
// mutations. The store is in-memory by contract — durable, encrypted-at-rest
// storage is the deployment's concern, not this package's.
package credentials

import (
	"errors"
	"sync"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
)

var (
	// ErrNotConnected means the principal has no stored binding. Callers must
	// treat this as a precondition failure, not an upstream error.
	ErrNotConnected = errors.New("AWS credentials not configured. Please connect your AWS account first.")

	// ErrInvalidCredentials means STS rejected the key or secret.
	ErrInvalidCredentials = errors.New("invalid AWS credentials")
)

// Store resolves a principal's binding. Resolve must be called once per
// request; the returned binding is read-only for that request's lifetime.
type Store interface {
	Resolve(principalID string) (domain.AccountBinding, error)
	Put(principalID string, binding domain.AccountBinding)
	Delete(principalID string)
}

type memoryStore struct {
	mu       sync.RWMutex
	bindings map[string]domain.AccountBinding
}

func NewMemoryStore() Store {
	return &memoryStore{bindings: make(map[string]domain.AccountBinding)}
}

func (s *memoryStore) Resolve(principalID string) (domain.AccountBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	binding, ok := s.bindings[principalID]
	if !ok {
		return domain.AccountBinding{}, ErrNotConnected
	}
	return binding, nil
}

func (s *memoryStore) Put(principalID string, binding domain.AccountBinding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[principalID] = binding
}

func (s *memoryStore) Delete(principalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bindings, principalID)
}
