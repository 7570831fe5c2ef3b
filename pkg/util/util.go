package util

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/pion/stun"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
)

const (
	UDPProtocol = "udp"
	TCPProtocol = "tcp"

	stunTimeout = 3 * time.Second
)

var DefaultSTUNServers = []string{
	"stun.l.google.com:19302",
	"stun1.l.google.com:19302",
}

// GetPublicEndpoint tries the provided STUN servers to discover the public-facing address
// of this host. Returns the first XOR-MAPPED-ADDRESS received, or an error if all servers fail.
func GetPublicEndpoint(ctx context.Context, servers []string) (*net.UDPAddr, error) {
	if len(servers) == 0 {
		return nil, errors.Wrap(errors.ErrPubAddrRetrieve, fmt.Errorf("no STUN servers provided"))
	}

	var lastErr error

	for _, server := range servers {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrPubAddrRetrieve, err)
		}

		endpoint, err := trySTUNServer(ctx, server)
		if err == nil {
			return endpoint, nil
		}

		lastErr = err
	}

	return nil, errors.Wrap(errors.ErrPubAddrRetrieve, fmt.Errorf("all STUN servers failed: %w", lastErr))
}

func trySTUNServer(ctx context.Context, server string) (*net.UDPAddr, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, UDPProtocol, server)
	if err != nil {
		return nil, fmt.Errorf("error dialing STUN server %s: %w", server, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(stunTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if errDeadline := conn.SetDeadline(deadline); errDeadline != nil {
		return nil, fmt.Errorf("error setting deadline: %w", errDeadline)
	}

	// Create a new STUN client
	client, err := stun.NewClient(conn)
	if err != nil {
		return nil, fmt.Errorf("error creating STUN client: %w", err)
	}
	defer client.Close()

	// Send a binding request to the STUN server for determining the public address
	var xorAddr stun.XORMappedAddress
	var errResp error
	if errDo := client.Do(stun.MustBuild(stun.TransactionID, stun.BindingRequest), func(res stun.Event) {
		if res.Error != nil {
			errResp = res.Error
			return
		}
		if getErr := xorAddr.GetFrom(res.Message); getErr != nil {
			errResp = fmt.Errorf("failed to get XOR-MAPPED-ADDRESS: %w", getErr)
		}
	}); errDo != nil {
		return nil, fmt.Errorf("STUN request to %s failed: %w", server, errDo)
	}

	if errResp != nil {
		return nil, fmt.Errorf("STUN request to %s failed: %w", server, errResp)
	}

	return &net.UDPAddr{IP: xorAddr.IP, Port: xorAddr.Port}, nil
}
