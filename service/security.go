package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"

	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EnvDiscoveryKey is the environment variable that overrides the persisted shared secret.
const EnvDiscoveryKey = "DISCOVERY_KEY"

// SignatureHeader carries the hex HMAC-SHA256 of an invocation body.
const SignatureHeader = "X-Discovery-Signature"

// LoadSecret resolves the shared secret with priority: explicit > DISCOVERY_KEY env > store > freshly
// generated value persisted to store. Returns secret_unavailable when the generated value cannot be persisted.
func LoadSecret(ctx context.Context, explicit string, store interfaces.SecretStore, logger log.Logger) (string, error) {
	logger = log.WithPrefix(logger, "component", "SecurityContext")

	if explicit != "" {
		level.Info(logger).Log("msg", "Using discovery secret from configuration")
		return explicit, nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvDiscoveryKey)); v != "" {
		level.Info(logger).Log("msg", "Loaded discovery secret from environment", "env", EnvDiscoveryKey)
		return v, nil
	}
	if store == nil {
		return "", NewSecretUnavailableError("no secret configured and no secret store available", nil)
	}

	secret, err := store.Load(ctx)
	switch {
	case err == nil && secret != "":
		level.Info(logger).Log("msg", "Loaded discovery secret from secret store")
		return secret, nil
	case err != nil && !IsEntityNotFoundError(err):
		// An unreadable store is still worth a write attempt; Persist reports the final verdict.
		level.Warn(logger).Log("msg", "Failed to read discovery secret", "err", err)
	}

	level.Info(logger).Log("msg", "No secret found, generating a new one")
	secret, err = store.Persist(ctx, uuid.NewString())
	if err != nil {
		level.Error(logger).Log("msg", "Failed to persist discovery secret", "err", err)
		return "", NewSecretUnavailableError("could not create or access the discovery secret", err)
	}
	return secret, nil
}

// SecurityContext owns the shared secret: it authenticates inbound discovery requests and signs payloads.
type SecurityContext struct {
	secret    []byte
	allowList map[netip.Addr]struct{}
	logger    log.Logger
}

// NewSecurityContext creates a SecurityContext. An empty ipWhitelist disables the address check.
// Returns configuration_error on an empty secret or an unparsable address.
func NewSecurityContext(secret string, ipWhitelist []string, logger log.Logger) (*SecurityContext, error) {
	if secret == "" {
		return nil, NewConfigurationError("secret is required", nil)
	}
	var allowList map[netip.Addr]struct{}
	if len(ipWhitelist) > 0 {
		allowList = make(map[netip.Addr]struct{}, len(ipWhitelist))
		for _, raw := range ipWhitelist {
			addr, err := netip.ParseAddr(strings.TrimSpace(raw))
			if err != nil {
				return nil, NewConfigurationError(fmt.Sprintf("invalid ip whitelist entry %q", raw), err)
			}
			allowList[addr.Unmap()] = struct{}{}
		}
	}
	return &SecurityContext{
		secret:    []byte(secret),
		allowList: allowList,
		logger:    log.WithPrefix(logger, "component", "SecurityContext"),
	}, nil
}

// BearerToken is the Authorization header value outbound discovery calls carry.
func (s *SecurityContext) BearerToken() string {
	return "Bearer " + string(s.secret)
}

// Authenticate runs the address check (when an allow-list is configured) and then the bearer check.
// Returns forbidden or unauthorized, nil when both pass.
func (s *SecurityContext) Authenticate(r *http.Request) error {
	if s.allowList != nil {
		addr, ok := remoteAddr(r)
		if _, allowed := s.allowList[addr]; !ok || !allowed {
			level.Warn(s.logger).Log("msg", "Rejected request from non-whitelisted address", "remote_addr", r.RemoteAddr)
			return NewForbiddenError("Forbidden: IP not whitelisted")
		}
	}

	token, found := strings.CutPrefix(r.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !found || token == "" || subtle.ConstantTimeCompare([]byte(token), s.secret) != 1 {
		level.Warn(s.logger).Log("msg", "Rejected request with invalid or missing discovery token", "remote_addr", r.RemoteAddr)
		return NewUnauthorizedError("Unauthorized")
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of payload keyed with the shared secret.
func (s *SecurityContext) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature of payload and compares it in constant time.
func (s *SecurityContext) Verify(payload []byte, signature string) bool {
	expected := s.Sign(payload)
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}

func remoteAddr(r *http.Request) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
