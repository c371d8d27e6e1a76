package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultCallTimeout bounds a single remote invocation.
const DefaultCallTimeout = 10 * time.Second

// Args are the arguments of a remote invocation. Keys matching ":key" path segments are substituted into the
// path; the rest travel as query parameters (GET, DELETE) or as the JSON body.
type Args map[string]any

// InvocationClient turns (service, route, args) into HTTP requests against peers resolved through a
// PeerDirectory. A failed call marks the peer DOWN immediately.
type InvocationClient struct {
	directory   interfaces.PeerDirectory
	httpClient  *http.Client
	signer      interfaces.Signer
	callTimeout time.Duration
	logger      log.Logger
}

// NewInvocationClient creates an InvocationClient. signer may be nil, which disables payload signing.
// Panics on nil directory, http client or logger.
func NewInvocationClient(directory interfaces.PeerDirectory, httpClient *http.Client, signer interfaces.Signer, callTimeout time.Duration, logger log.Logger) *InvocationClient {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &InvocationClient{
		directory:   helpers.NilPanic(directory, "service.client.go: directory is required"),
		httpClient:  helpers.NilPanic(httpClient, "service.client.go: http client is required"),
		signer:      signer,
		callTimeout: callTimeout,
		logger:      log.WithPrefix(helpers.NilPanic(logger, "service.client.go: logger is required"), "component", "InvocationClient"),
	}
}

// ServiceHandle is the per-service half of the two-level call surface.
type ServiceHandle struct {
	client *InvocationClient
	name   string
}

// Service selects a peer by name. The peer is resolved on every Call, not here.
func (c *InvocationClient) Service(name string) ServiceHandle {
	return ServiceHandle{client: c, name: name}
}

// Call invokes routeName on the selected service. See InvocationClient.Invoke.
func (h ServiceHandle) Call(ctx context.Context, routeName string, args Args, out any) error {
	return h.client.Invoke(ctx, h.name, routeName, args, out)
}

// Invoke calls the route with logical name routeName on serviceName and decodes the JSON response into out
// (out may be nil).
// Returns:
// 1) nil on a 2xx answer;
// 2) service_unavailable when the peer is unknown or DOWN, without any network call;
// 3) route_not_found when the peer has no such route, without any network call;
// 4) transport_failure on network error or timeout, the peer is marked DOWN;
// 5) remote_status on a non-2xx answer, the peer is marked DOWN;
// 6) internal_server_error when the request cannot be built or the response cannot be decoded.
func (c *InvocationClient) Invoke(ctx context.Context, serviceName, routeName string, args Args, out any) error {
	peer, ok := c.directory.Lookup(serviceName)
	if !ok || peer.Status != domain.StatusUp {
		level.Error(c.logger).Log("msg", "Service is unavailable", "service", serviceName)
		return NewServiceUnavailableError(fmt.Sprintf("Service Unavailable: %s", serviceName))
	}
	route, ok := peer.FindRoute(routeName)
	if !ok {
		level.Error(c.logger).Log("msg", "Route not found", "service", serviceName, "route", routeName)
		return NewRouteNotFoundError(fmt.Sprintf("Route Not Found: %s on %s", routeName, serviceName))
	}

	if _, err := json.Marshal(args); err != nil {
		return NewBadParameterError(fmt.Sprintf("arguments of %s on %s are not JSON-encodable", routeName, serviceName), err)
	}

	path, rest := SubstitutePath(route.Path, args)
	method := strings.ToUpper(route.Method)
	reqURL := strings.TrimRight(peer.BaseURL, "/") + path

	var body []byte
	if isReadMethod(method) {
		if q := encodeQuery(rest); q != "" {
			reqURL += "?" + q
		}
	} else {
		var err error
		body, err = json.Marshal(rest)
		if err != nil {
			return NewInternalServerError("can't marshal invocation arguments", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(callCtx, method, reqURL, bodyReader(body))
	if err != nil {
		return NewInternalServerError("can't build invocation request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if c.signer != nil {
			req.Header.Set(SignatureHeader, c.signer.Sign(body))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		level.Error(c.logger).Log("msg", "Invocation failed", "method", method, "url", reqURL, "err", err)
		if ctx.Err() == nil {
			c.directory.MarkDown(serviceName, err.Error())
		}
		return NewTransportFailureError(fmt.Sprintf("calling %s %s on %s", method, path, serviceName), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == nil {
			c.directory.MarkDown(serviceName, err.Error())
		}
		return NewTransportFailureError(fmt.Sprintf("reading response of %s %s on %s", method, path, serviceName), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := fmt.Sprintf("%s %s returned status %d", method, path, resp.StatusCode)
		level.Error(c.logger).Log("msg", "Invocation failed", "method", method, "url", reqURL, "status", resp.StatusCode)
		c.directory.MarkDown(serviceName, reason)
		return NewRemoteStatusError(reason, resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return NewInternalServerError("can't decode invocation response", fmt.Errorf("decode body of %s %s on %s, err: %w", method, path, serviceName, err))
	}
	return nil
}

// SubstitutePath replaces every ":key" segment of template for which args has key with the escaped value and
// returns the path together with the arguments that were not consumed. Unmatched segments are left as is.
func SubstitutePath(template string, args Args) (string, Args) {
	rest := make(Args, len(args))
	maps.Copy(rest, args)

	segments := strings.Split(template, "/")
	for i, seg := range segments {
		key, ok := strings.CutPrefix(seg, ":")
		if !ok || key == "" {
			continue
		}
		v, ok := args[key]
		if !ok {
			continue
		}
		segments[i] = url.PathEscape(formatValue(v))
		delete(rest, key)
	}
	return strings.Join(segments, "/"), rest
}

func isReadMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodDelete
}

func encodeQuery(args Args) string {
	values := url.Values{}
	for k, v := range args {
		switch vv := v.(type) {
		case nil:
		case []string:
			for _, s := range vv {
				values.Add(k, s)
			}
		case []any:
			for _, s := range vv {
				values.Add(k, formatValue(s))
			}
		default:
			values.Add(k, formatValue(v))
		}
	}
	return values.Encode()
}

// formatValue renders a path or query value. Scalars are printed as is; maps, structs and nested slices are
// JSON-encoded so no structure is lost.
func formatValue(v any) string {
	switch vv := v.(type) {
	case string:
		return vv
	case fmt.Stringer:
		return vv.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return fmt.Sprint(vv)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

func bodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return bytes.NewReader(body)
}
