// Package directory maps peer codes to the public address the rendezvous server observed
// for them. Entries are overwritten on every registration and never expire.
package directory

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/yago-123/burrow-rendez/pkg/peer"
	"github.com/yago-123/burrow-rendez/pkg/rendez/store"
)

type Directory struct {
	store  store.Store
	logger logr.Logger
}

func New(s store.Store, opts ...Option) *Directory {
	cfg := newDefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return &Directory{
		store:  s,
		logger: cfg.logger,
	}
}

// Register binds code to observedAddr, replacing any previous address for the same code.
// observedAddr must come from the transport, never from the request payload. Returns the
// address that was stored.
func (d *Directory) Register(code, observedAddr string) (string, error) {
	if err := d.store.Register(code, peer.Entry{Code: code, Address: observedAddr}); err != nil {
		return "", fmt.Errorf("register %q: %w", code, err)
	}

	d.logger.Info("Registered peer", "code", code, "address", observedAddr)

	return observedAddr, nil
}

// Lookup returns the address registered for code, or errors.ErrPeerNotFound
func (d *Directory) Lookup(code string) (string, error) {
	entry, err := d.store.Lookup(code)
	if err != nil {
		return "", err
	}

	return entry.Address, nil
}
