package tokencache

import (
	"context"
	"sync"
	"time"

	"github.com/Tan4ek/alfred-qingping-monitor/internal/qingping"
)

// MemoryStore holds the token for the lifetime of one process. Used when the
// cache directory is unusable; the workflow still works, it just fetches a
// token every invocation.
type MemoryStore struct {
	mu  sync.Mutex
	tok *qingping.Token
	now func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Get(ctx context.Context) (*qingping.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tok.Valid(s.now()) {
		return nil, nil
	}
	tok := *s.tok
	return &tok, nil
}

func (s *MemoryStore) Put(ctx context.Context, t qingping.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = &t
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = nil
	return nil
}
