package interfaces

import "mymesh/domain"

// PeerDirectory is the part of the registry the invocation client depends on:
// it reads peer records and may only flip a peer to DOWN.
//
//go:generate moq -stub -out mock/peer_directory.go -pkg mock . PeerDirectory
type PeerDirectory interface {
	// Lookup returns a copy of the peer record for name.
	Lookup(name string) (domain.PeerRecord, bool)

	// MarkDown transitions an UP peer to DOWN and fires the down hook; no-op when already DOWN or unknown.
	MarkDown(name string, reason string)
}
