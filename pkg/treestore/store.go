// Package treestore persists generated trees and sampled test cases.
// Two backends sit behind one interface: plain JSON files on disk (the
// shape external renderers consume directly) and an embedded Badger
// database for larger benchmark batches.
package treestore

import (
	"context"
	"fmt"

	"github.com/soundprediction/kinship/pkg/sampler"
	"github.com/soundprediction/kinship/pkg/types"
)

// Backend selects the storage implementation.
type Backend string

const (
	// BackendFS stores each tree and case file as JSON under a directory.
	BackendFS Backend = "fs"
	// BackendBadger stores records in an embedded Badger database.
	BackendBadger Backend = "badger"
)

// Config configures a store backend.
type Config struct {
	// Backend is "fs" (default) or "badger".
	Backend Backend `json:"backend" mapstructure:"backend"`
	// Path is the data directory. Empty with the badger backend opens an
	// in-memory database, which tests rely on.
	Path string `json:"path" mapstructure:"path"`
}

// Store persists generated datasets keyed by dataset ID (conventionally
// "G<depth>_N<nodes>_<edition>").
type Store interface {
	PutTree(ctx context.Context, id string, tree *types.Person) error
	GetTree(ctx context.Context, id string) (*types.Person, error)
	ListTrees(ctx context.Context) ([]string, error)
	PutCases(ctx context.Context, id string, cases []sampler.Case) error
	GetCases(ctx context.Context, id string) ([]sampler.Case, error)
	Close() error
}

// New creates a store for the configured backend.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendFS, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("fs store requires a path")
		}
		return newFSStore(cfg.Path)
	case BackendBadger:
		return newBadgerStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported store backend %q (supported: fs, badger)", cfg.Backend)
	}
}
