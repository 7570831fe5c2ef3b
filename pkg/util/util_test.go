package util

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/pion/stun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
)

// startSTUNResponder answers every binding request with the mapped address
func startSTUNResponder(t *testing.T, mapped *net.UDPAddr) string {
	t.Helper()

	conn, err := net.ListenPacket(UDPProtocol, "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 1500)
		for {
			n, addr, errRead := conn.ReadFrom(buf)
			if errRead != nil {
				return
			}

			req := &stun.Message{Raw: append([]byte{}, buf[:n]...)}
			if errDecode := req.Decode(); errDecode != nil {
				continue
			}

			resp, errBuild := stun.Build(
				stun.NewTransactionIDSetter(req.TransactionID),
				stun.BindingSuccess,
				&stun.XORMappedAddress{IP: mapped.IP, Port: mapped.Port},
				stun.Fingerprint,
			)
			if errBuild != nil {
				continue
			}

			_, _ = conn.WriteTo(resp.Raw, addr)
		}
	}()

	return conn.LocalAddr().String()
}

func TestGetPublicEndpoint(t *testing.T) {
	mapped := &net.UDPAddr{IP: net.ParseIP("203.0.113.7").To4(), Port: 51820}
	server := startSTUNResponder(t, mapped)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	endpoint, err := GetPublicEndpoint(ctx, []string{server})
	require.NoError(t, err)
	assert.True(t, endpoint.IP.Equal(mapped.IP))
	assert.Equal(t, mapped.Port, endpoint.Port)
}

func TestGetPublicEndpointFallback(t *testing.T) {
	mapped := &net.UDPAddr{IP: net.ParseIP("198.51.100.4").To4(), Port: 4000}
	server := startSTUNResponder(t, mapped)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	endpoint, err := GetPublicEndpoint(ctx, []string{"invalid host:bad port", server})
	require.NoError(t, err)
	assert.True(t, endpoint.IP.Equal(mapped.IP))
}

func TestGetPublicEndpointNoServers(t *testing.T) {
	_, err := GetPublicEndpoint(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrPubAddrRetrieve)
}

func TestGetPublicEndpointCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetPublicEndpoint(ctx, []string{"127.0.0.1:3478"})
	assert.ErrorIs(t, err, errors.ErrPubAddrRetrieve)
	assert.ErrorIs(t, err, context.Canceled)
}
