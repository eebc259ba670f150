// Package kv provides the key-value slot backends behind ports.KeyValueStore.
//
// Four backends are available: a directory of files written atomically, a SQLite
// table (modernc.org/sqlite, no CGo), a bbolt bucket, and an in-process map.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/pkg/filesystem"
	"github.com/doeshing/textpolish/internal/ports"
)

// ErrInvalidKey rejects keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid key")

// Open creates the backend selected by settings. An empty path selects the
// backend's default location under ~/.textpolish.
func Open(settings domain.StorageSettings) (ports.KeyValueStore, error) {
	backend := settings.Backend
	if backend == "" {
		backend = domain.StorageBackendFile
	}
	path := filesystem.ExpandHome(settings.Path)
	if path == "" {
		path = DefaultPath(backend)
	}

	switch backend {
	case domain.StorageBackendFile:
		return NewFileStore(path), nil
	case domain.StorageBackendSQLite:
		return OpenSQLite(path)
	case domain.StorageBackendBolt:
		return OpenBolt(path)
	case domain.StorageBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}

// DefaultPath returns the default location of a backend.
func DefaultPath(backend string) string {
	switch backend {
	case domain.StorageBackendSQLite:
		return filepath.Join(filesystem.AppDir(), "polish.db")
	case domain.StorageBackendBolt:
		return filepath.Join(filesystem.AppDir(), "polish.bolt")
	case domain.StorageBackendMemory:
		return ""
	default:
		return filepath.Join(filesystem.AppDir(), "store")
	}
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
