// Package memory provides a map-backed kv.Store used in tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/duartefn/moneybook/internal/kv"
)

var _ kv.Store = (*Store)(nil)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v

	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *Store) List(_ context.Context, prefix string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte)

	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			c := make([]byte, len(v))
			copy(c, v)
			out[k] = c
		}
	}

	return out, nil
}
