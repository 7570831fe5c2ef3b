package store

import (
	"fmt"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
)

// New builds the store for the given backend name
func New(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendLevelDB:
		return NewLevelDBStore()
	default:
		return nil, errors.Wrap(errors.ErrInvalidConfig, fmt.Errorf("unknown store backend %q", backend))
	}
}
