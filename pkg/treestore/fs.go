package treestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/soundprediction/kinship/pkg/sampler"
	"github.com/soundprediction/kinship/pkg/types"
)

// fsStore writes trees/<id>.json and cases/<id>.json under a root
// directory, mirroring the layout external renderers read from.
type fsStore struct {
	root string
}

func newFSStore(root string) (*fsStore, error) {
	for _, sub := range []string{"trees", "cases"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &fsStore{root: root}, nil
}

func (s *fsStore) PutTree(_ context.Context, id string, tree *types.Person) error {
	if err := tree.Validate(); err != nil {
		return err
	}
	return s.writeJSON(filepath.Join(s.root, "trees", id+".json"), tree)
}

func (s *fsStore) GetTree(_ context.Context, id string) (*types.Person, error) {
	var tree types.Person
	if err := s.readJSON(filepath.Join(s.root, "trees", id+".json"), &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

func (s *fsStore) ListTrees(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "trees"))
	if err != nil {
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fsStore) PutCases(_ context.Context, id string, cases []sampler.Case) error {
	return s.writeJSON(filepath.Join(s.root, "cases", id+".json"), cases)
}

func (s *fsStore) GetCases(_ context.Context, id string) ([]sampler.Case, error) {
	var cases []sampler.Case
	if err := s.readJSON(filepath.Join(s.root, "cases", id+".json"), &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func (s *fsStore) Close() error { return nil }

func (s *fsStore) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *fsStore) readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
