package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"
)

// DefaultSecretFileName is the well-known file name of the persisted secret inside os.TempDir().
const DefaultSecretFileName = "_mymesh_discovery_key"

// DefaultSecretPath returns the well-known location shared by co-located processes.
func DefaultSecretPath() string {
	return filepath.Join(os.TempDir(), DefaultSecretFileName)
}

// SecretFile creates an interfaces.SecretStore backed by a 0600 file at path. Panics on empty path.
func SecretFile(path string) interfaces.SecretStore {
	return &secretFile{path: helpers.StrPanic(path, "adapters.secret_file.go: path is required")}
}

type secretFile struct {
	path string
}

func (s *secretFile) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", service.NewEntityNotFoundError("secret file not found", nil)
	}
	if err != nil {
		return "", service.NewInternalServerError("secret file read error", fmt.Errorf("can't read %s, err: %w", s.path, err))
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", service.NewEntityNotFoundError("secret file is empty", nil)
	}
	return secret, nil
}

// Persist creates the file exclusively; when another process created it first, its content wins.
func (s *secretFile) Persist(ctx context.Context, secret string) (string, error) {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return s.Load(ctx)
	}
	if err != nil {
		return "", service.NewInternalServerError("secret file create error", fmt.Errorf("can't create %s, err: %w", s.path, err))
	}
	if _, err := f.WriteString(secret); err != nil {
		_ = f.Close()
		return "", service.NewInternalServerError("secret file write error", fmt.Errorf("can't write %s, err: %w", s.path, err))
	}
	if err := f.Close(); err != nil {
		return "", service.NewInternalServerError("secret file write error", fmt.Errorf("can't close %s, err: %w", s.path, err))
	}
	return secret, nil
}
