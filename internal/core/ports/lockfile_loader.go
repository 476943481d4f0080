package ports

import "go.trai.ch/rebuild/internal/core/domain"

// LockfileLoader loads the persisted dependency graph of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile_loader.go -destination=mocks/mock_lockfile_loader.go -package=mocks
type LockfileLoader interface {
	// Load reads the lockfile under root. found is false when the project has no lockfile.
	Load(root, name string) (lockfile *domain.Lockfile, found bool, err error)
}

// DepPathResolver interprets dependency references and paths.
type DepPathResolver interface {
	// Resolve turns a (name, reference) pair into a node identifier.
	// It reports false for references that do not point into the lockfile.
	Resolve(name, reference string) (domain.InternedString, bool)

	// NameVersion derives the package name and version of a snapshot.
	NameVersion(id domain.InternedString, snap domain.PackageSnapshot) domain.PackageName

	// InstallDir returns the directory a package is installed in.
	InstallDir(modulesDir, registry string, id domain.InternedString, name string) string
}
