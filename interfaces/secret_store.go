package interfaces

import "context"

// SecretStore persists the shared discovery secret so that co-located processes reuse one value.
//
//go:generate moq -stub -out mock/secret_store.go -pkg mock . SecretStore
type SecretStore interface {
	// Load returns the persisted secret.
	// Returns:
	// 1) (secret, nil) when one is stored;
	// 2) ("", entity_not_found) when nothing is stored yet;
	// 3) ("", internal_server_error) when the storage cannot be read.
	Load(ctx context.Context) (string, error)

	// Persist stores secret unless another one is already stored, and returns the value that is stored
	// afterwards (the caller's or the one that won the race).
	// Returns ("", internal_server_error) when the storage cannot be written.
	Persist(ctx context.Context, secret string) (string, error)
}
