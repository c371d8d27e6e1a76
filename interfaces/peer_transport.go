package interfaces

import (
	"context"

	"mymesh/domain"
)

// PeerTransport issues the outbound discovery calls of the registration handshake and health checks.
//
//go:generate moq -stub -out mock/peer_transport.go -pkg mock . PeerTransport
type PeerTransport interface {
	// Register posts self to baseURL's register endpoint.
	// Returns:
	// 1) (peer descriptor, nil) on 200;
	// 2) (zero, transport_failure) on network error or timeout;
	// 3) (zero, remote_status) on a non-success status.
	Register(ctx context.Context, baseURL string, self domain.ServiceDescriptor) (domain.ServiceDescriptor, error)

	// Ping posts to baseURL's ping endpoint. Same error classes as Register.
	Ping(ctx context.Context, baseURL string) error
}
