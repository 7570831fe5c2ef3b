package store

import "github.com/yago-123/burrow-rendez/pkg/peer"

const (
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
)

// Store is the concurrency-safe mapping from peer code to the last registered entry.
// Lookup returns errors.ErrPeerNotFound when no entry exists for the code.
type Store interface {
	Register(code string, entry peer.Entry) error
	Lookup(code string) (peer.Entry, error)
	Close() error
}
