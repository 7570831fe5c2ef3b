package store

import (
	"sync"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
	"github.com/yago-123/burrow-rendez/pkg/peer"
)

type MemoryStore struct {
	mu    sync.RWMutex
	peers map[string]peer.Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		peers: make(map[string]peer.Entry),
	}
}

func (s *MemoryStore) Register(code string, entry peer.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[code] = entry
	return nil
}

func (s *MemoryStore) Lookup(code string) (peer.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.peers[code]
	if !ok {
		return peer.Entry{}, errors.ErrPeerNotFound
	}
	return entry, nil
}

// Close is a no-op, entries live as long as the store itself
func (s *MemoryStore) Close() error {
	return nil
}
