package ports

import "go.trai.ch/rebuild/internal/core/domain"

// ModulesStore persists the installation state of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ModulesStore interface {
	// Read loads the state from modulesDir. found is false when no state exists.
	Read(modulesDir string) (state *domain.ModulesState, found bool, err error)

	// Write replaces the state in modulesDir.
	Write(modulesDir string, state *domain.ModulesState) error
}

// BuildRecordStore defines the interface for storing and retrieving build records.
type BuildRecordStore interface {
	// Get retrieves the record of a node.
	// Returns nil, nil if not found.
	Get(modulesDir, node string) (*domain.BuildRecord, error)

	// Put stores the record.
	Put(modulesDir string, record domain.BuildRecord) error
}

// SettingsLoader reads the project settings file.
type SettingsLoader interface {
	// Load merges the settings file under root into base and validates the result.
	Load(root string, base domain.Settings) (domain.Settings, error)

	// Validate checks settings without reading any file.
	Validate(settings *domain.Settings) error
}
