package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrArtifactNotFound is returned by Get when no artifact has the name.
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore persists serialized model artifacts by name.
type ArtifactStore interface {
	// Get returns the raw artifact bytes.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put upserts an artifact.
	Put(ctx context.Context, name string, data []byte) error

	// List returns the stored artifact names in lexical order.
	List(ctx context.Context) ([]string, error)

	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string // "dir", "sqlite" or "postgres"
	Path    string // directory or sqlite file
	DSN     string // postgres connection string
}

// Open returns the configured backend.
func Open(opts Options) (ArtifactStore, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", "dir":
		return NewDirStore(opts.Path)
	case "sqlite", "sqlite3":
		return NewSQLiteStore(opts.Path)
	case "postgres", "pgx":
		return NewPostgresStore(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", opts.Backend)
	}
}
