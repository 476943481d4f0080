// Package modules persists the installation state file of a modules directory.
package modules

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Store implements ports.ModulesStore using the .modules.yaml file.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read loads the state of modulesDir. found is false when the file does not exist.
func (s *Store) Read(modulesDir string) (*domain.ModulesState, bool, error) {
	path := filepath.Join(modulesDir, domain.ModulesStateFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is inside the modules directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrModulesReadFailed.Error()), "path", path)
	}

	var state domain.ModulesState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrModulesParseFailed.Error()), "path", path)
	}
	return &state, true, nil
}

// Write replaces the state file of modulesDir.
func (s *Store) Write(modulesDir string, state *domain.ModulesState) error {
	path := filepath.Join(modulesDir, domain.ModulesStateFileName)

	data, err := yaml.Marshal(state)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrModulesWriteFailed.Error()), "path", path)
	}

	if err := os.MkdirAll(modulesDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrModulesWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrModulesWriteFailed.Error()), "path", path)
	}
	return nil
}
