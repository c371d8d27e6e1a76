package interfaces

import "mymesh/domain"

// PeerRegistry is what the discovery endpoints need from the registry.
//
//go:generate moq -stub -out mock/peer_registry.go -pkg mock . PeerRegistry
type PeerRegistry interface {
	// Self returns the local descriptor.
	Self() domain.ServiceDescriptor

	// Register applies an incoming descriptor and returns the local one.
	// Returns bad_parameter when the descriptor is incomplete.
	Register(incoming domain.ServiceDescriptor) (domain.ServiceDescriptor, error)

	// List returns a snapshot of every peer record keyed by name.
	List() map[string]domain.PeerRecord
}
