// Package cas implements the build record store.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildRecordStore with one JSON file per node under
// the record directory of a modules directory.
type Store struct {
	mu sync.RWMutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// RecordFile returns the path of the record of node inside modulesDir.
func RecordFile(modulesDir, node string) string {
	return filepath.Join(domain.DefaultRecordPath(modulesDir), fmt.Sprintf("%016x.json", xxhash.Sum64String(node)))
}

// Get retrieves the record of node. It returns nil, nil when none exists.
func (s *Store) Get(modulesDir, node string) (*domain.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := RecordFile(modulesDir, node)
	//nolint:gosec // Path is derived from a hash and a trusted modules directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	var rec domain.BuildRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", path)
	}
	return &rec, nil
}

// Put stores the record, replacing any earlier record of the same node.
func (s *Store) Put(modulesDir string, rec domain.BuildRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := domain.DefaultRecordPath(modulesDir)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	path := RecordFile(modulesDir, rec.Node)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	return nil
}
