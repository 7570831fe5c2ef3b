package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
	"github.com/yago-123/burrow-rendez/pkg/rendez/types"
)

const RendezvousClientTimeout = 5 * time.Second

type Rendezvous interface {
	Register(ctx context.Context, code string) (string, error)
	Lookup(ctx context.Context, code string) (string, error)
	WaitForPeer(ctx context.Context, code string, interval time.Duration) (string, error)
}

type Client struct {
	baseURL   string
	client    *http.Client
	codeField string
	logger    logr.Logger
}

func NewRendezvous(baseURL string, opts ...Option) *Client {
	cfg := newDefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    cfg.httpClient,
		codeField: cfg.codeField,
		logger:    cfg.logger,
	}
}

// Register registers code with the rendezvous server and returns the address the server
// observed for this host
func (c *Client) Register(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(map[string]string{c.codeField: code})
	if err != nil {
		return "", errors.Wrap(errors.ErrRegisterPeer, fmt.Errorf("marshal register request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.ErrRegisterPeer, fmt.Errorf("create http request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(errors.ErrRegisterPeer, fmt.Errorf("send register request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrap(errors.ErrRegisterPeer, fmt.Errorf("register failed with status: %s", resp.Status))
	}

	var regResp types.RegisterResponse
	if errJSON := json.NewDecoder(resp.Body).Decode(&regResp); errJSON != nil {
		return "", errors.Wrap(errors.ErrRegisterPeer, fmt.Errorf("decode response: %w", errJSON))
	}

	c.logger.Info("Registered peer code", "code", code, "observedAddress", regResp.IP)

	return regResp.IP, nil
}

// Lookup retrieves the address registered for code. Returns errors.ErrPeerNotFound when the
// server does not know the code
func (c *Client) Lookup(ctx context.Context, code string) (string, error) {
	endpoint := fmt.Sprintf("%s/lookup/%s", c.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrLookupPeer, fmt.Errorf("create lookup request: %w", err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrLookupPeer, fmt.Errorf("send lookup request: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", errors.ErrPeerNotFound
	default:
		return "", errors.Wrap(errors.ErrLookupPeer, fmt.Errorf("lookup failed with status: %s", resp.Status))
	}

	var lookupResp types.LookupResponse
	if errJSON := json.NewDecoder(resp.Body).Decode(&lookupResp); errJSON != nil {
		return "", errors.Wrap(errors.ErrLookupPeer, fmt.Errorf("decode response: %w", errJSON))
	}

	return lookupResp.IP, nil
}

// WaitForPeer polls the rendezvous server every interval until code is registered or ctx ends
func (c *Client) WaitForPeer(ctx context.Context, code string, interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", errors.Wrap(errors.ErrWaitForPeer, fmt.Errorf("interval must be greater than 0"))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		addr, err := c.Lookup(ctx, code)
		if err == nil {
			return addr, nil
		}

		if !stderrors.Is(err, errors.ErrPeerNotFound) {
			c.logger.V(1).Info("Lookup failed, retrying", "code", code, "error", err.Error())
		}

		select {
		case <-ctx.Done():
			return "", errors.Wrap(errors.ErrWaitForPeer, ctx.Err())
		case <-ticker.C:
		}
	}
}
