package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"
)

// PeerHTTP creates an interfaces.PeerTransport that talks to other nodes' discovery endpoints over HTTP:
// POST baseURL+prefix/register and POST baseURL+prefix/ping, both with the bearer secret. Panics on nil client
// or security context, or an empty prefix.
//
// Parameters: client — HTTP client supplied by the host; security — provides the bearer token;
// prefix — discovery mount prefix (e.g. /_discovery), the same on every node.
//
// Returns: interfaces.PeerTransport (*peerHTTP).
//
// Called from discovery.New when a node is assembled.
func PeerHTTP(client *http.Client, security *service.SecurityContext, prefix string) interfaces.PeerTransport {
	return &peerHTTP{
		client:   helpers.NilPanic(client, "adapters.peer_http.go: http client is required"),
		security: helpers.NilPanic(security, "adapters.peer_http.go: security context is required"),
		prefix:   helpers.StrPanic(prefix, "adapters.peer_http.go: prefix is required"),
	}
}

// peerHTTP implements interfaces.PeerTransport. Timeouts come from the caller's context
// (service.Registry bounds every call with its probe timeout).
type peerHTTP struct {
	client   *http.Client
	security *service.SecurityContext
	prefix   string
}

// Register performs POST baseURL+prefix/register with self as JSON body and decodes the peer's descriptor.
//
// Returns: (descriptor, nil) on 200; transport_failure on request error or timeout; remote_status on any other
// status; bad_parameter when the body is not a descriptor.
//
// Called from service.Registry.DiscoverPeers for each seed URL.
func (p *peerHTTP) Register(ctx context.Context, baseURL string, self domain.ServiceDescriptor) (domain.ServiceDescriptor, error) {
	payload, err := json.Marshal(self)
	if err != nil {
		return domain.ServiceDescriptor{}, service.NewInternalServerError("can't marshal self descriptor", err)
	}
	body, err := p.post(ctx, baseURL, "/register", payload)
	if err != nil {
		return domain.ServiceDescriptor{}, err
	}
	var peer domain.ServiceDescriptor
	if err := json.Unmarshal(body, &peer); err != nil {
		return domain.ServiceDescriptor{}, service.NewBadParameterError("peer register response is not a service descriptor", err)
	}
	return peer, nil
}

// Ping performs POST baseURL+prefix/ping without body.
//
// Returns: nil on 200; transport_failure on request error or timeout; remote_status on any other status.
//
// Called from service.Registry.CheckPeers once per peer and tick.
func (p *peerHTTP) Ping(ctx context.Context, baseURL string) error {
	_, err := p.post(ctx, baseURL, "/ping", nil)
	return err
}

func (p *peerHTTP) post(ctx context.Context, baseURL string, endpoint string, payload []byte) ([]byte, error) {
	reqURL := strings.TrimRight(baseURL, "/") + p.prefix + endpoint
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, reader)
	if err != nil {
		return nil, service.NewTransportFailureError(fmt.Sprintf("can't build request to %s", reqURL), err)
	}
	req.Header.Set("Authorization", p.security.BearerToken())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, service.NewTransportFailureError(fmt.Sprintf("POST %s failed", reqURL), err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, service.NewTransportFailureError(fmt.Sprintf("reading response of POST %s failed", reqURL), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, service.NewRemoteStatusError(fmt.Sprintf("POST %s returned %d", reqURL, resp.StatusCode), resp.StatusCode, body)
	}
	return body, nil
}
