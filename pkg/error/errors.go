package errors

import (
	"errors"
	"fmt"
)

var (
	// Directory errors
	ErrPeerNotFound = errors.New("peer not found")
	ErrStoreClosed  = errors.New("store is closed")
	ErrEncodeEntry  = errors.New("failed to encode peer entry")
	ErrDecodeEntry  = errors.New("failed to decode peer entry")

	// Client errors
	ErrRegisterPeer = errors.New("failed to register with rendezvous server")
	ErrLookupPeer   = errors.New("failed to lookup peer in rendezvous server")
	ErrWaitForPeer  = errors.New("failed to wait for remote peer")

	// Server errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrServerStart   = errors.New("failed to start rendezvous server")

	ErrPubAddrRetrieve = errors.New("failed to get public address")
)

func Wrap(step error, err error) error {
	return fmt.Errorf("%w: %w", step, err)
}
