package treestore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/soundprediction/kinship/pkg/sampler"
	"github.com/soundprediction/kinship/pkg/types"
)

const (
	treePrefix = "tree/"
	casePrefix = "cases/"
)

// badgerStore keeps datasets in an embedded Badger database. An empty
// path opens the database in memory.
type badgerStore struct {
	db *badger.DB
}

func newBadgerStore(path string) (*badgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) PutTree(_ context.Context, id string, tree *types.Person) error {
	if err := tree.Validate(); err != nil {
		return err
	}
	return s.put(treePrefix+id, tree)
}

func (s *badgerStore) GetTree(_ context.Context, id string) (*types.Person, error) {
	var tree types.Person
	if err := s.get(treePrefix+id, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

func (s *badgerStore) ListTrees(_ context.Context) ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(treePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, treePrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *badgerStore) PutCases(_ context.Context, id string, cases []sampler.Case) error {
	return s.put(casePrefix+id, cases)
}

func (s *badgerStore) GetCases(_ context.Context, id string) ([]sampler.Case, error) {
	var cases []sampler.Case
	if err := s.get(casePrefix+id, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

func (s *badgerStore) put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *badgerStore) get(key string, v interface{}) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(data []byte) error {
			return json.Unmarshal(data, v)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	return nil
}
