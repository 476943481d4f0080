// Package lockfile reads pnpm lockfiles and interprets their dependency paths.
package lockfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultRegistry is used when the lockfile does not name a registry.
const DefaultRegistry = "https://registry.npmjs.org/"

// Loader implements ports.LockfileLoader for YAML lockfiles.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the lockfile called name under root. With an empty name the
// default lockfile is tried first, then the legacy shrinkwrap file.
func (l *Loader) Load(root, name string) (*domain.Lockfile, bool, error) {
	candidates := []string{name}
	if name == "" {
		candidates = []string{domain.DefaultLockfileName, domain.LegacyLockfileName}
	}

	for _, candidate := range candidates {
		path := candidate
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, candidate)
		}

		data, err := os.ReadFile(path) //nolint:gosec // path is under the project root
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, false, zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", path)
		}

		lockfile, err := Parse(data)
		if err != nil {
			return nil, false, zerr.With(err, "path", path)
		}
		return lockfile, true, nil
	}

	return nil, false, nil
}

// Parse decodes lockfile content.
func Parse(data []byte) (*domain.Lockfile, error) {
	var dto lockfileDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
	}

	lockfile := &domain.Lockfile{
		Version:              dto.LockfileVersion,
		Registry:             dto.Registry,
		Dependencies:         dto.Dependencies,
		DevDependencies:      dto.DevDependencies,
		OptionalDependencies: dto.OptionalDependencies,
		Packages:             make(map[domain.InternedString]domain.PackageSnapshot, len(dto.Packages)),
	}
	if lockfile.Version == "" {
		lockfile.Version = dto.ShrinkwrapVersion
	}
	if lockfile.Registry == "" {
		lockfile.Registry = DefaultRegistry
	}

	for depPath, snap := range dto.Packages {
		lockfile.Packages[domain.NewInternedString(depPath)] = domain.PackageSnapshot{
			Name:                 snap.Name,
			Version:              snap.Version,
			ID:                   snap.ID,
			Dependencies:         snap.Dependencies,
			OptionalDependencies: snap.OptionalDependencies,
			Optional:             snap.Optional,
			Prepare:              snap.Prepare,
			RequiresBuild:        snap.RequiresBuild,
		}
	}

	return lockfile, nil
}
