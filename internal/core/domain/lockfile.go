package domain

// Lockfile is the persisted, already-resolved dependency graph of a project.
// It is loaded once per invocation and never mutated.
type Lockfile struct {
	// Version is the lockfile format version as written by the installer.
	Version string

	// Registry is the default registry URL packages were resolved from.
	Registry string

	// Dependencies are the production dependencies of the project (name to reference).
	Dependencies map[string]string

	// DevDependencies are the development dependencies of the project.
	DevDependencies map[string]string

	// OptionalDependencies are the optional dependencies of the project.
	OptionalDependencies map[string]string

	// Packages maps a dependency path to its snapshot.
	Packages map[InternedString]PackageSnapshot
}

// PackageSnapshot is the lockfile record of one installed package.
type PackageSnapshot struct {
	// Name is set for packages whose name cannot be derived from the dependency path.
	Name string
	// Version accompanies Name for such packages.
	Version string
	// ID is the package identifier reported when an optional build is skipped.
	ID string

	Dependencies         map[string]string
	OptionalDependencies map[string]string

	// Optional marks a package that is only reachable through optional edges.
	Optional bool
	// Prepare marks a package whose manifest declares a prepare script.
	Prepare bool
	// RequiresBuild is informational; every selected package runs its hooks.
	RequiresBuild bool
}

// Snapshot returns the snapshot stored under id.
func (l *Lockfile) Snapshot(id InternedString) (PackageSnapshot, bool) {
	if l == nil {
		return PackageSnapshot{}, false
	}
	snap, ok := l.Packages[id]
	return snap, ok
}

// PackageIDs returns every dependency path of the lockfile in sorted order.
func (l *Lockfile) PackageIDs() []InternedString {
	if l == nil {
		return nil
	}
	ids := make([]InternedString, 0, len(l.Packages))
	for id := range l.Packages {
		ids = append(ids, id)
	}
	SortInterned(ids)
	return ids
}

// PackageName is the result of deriving a name and version for a snapshot.
// OK is false when no name could be derived.
type PackageName struct {
	Name    string
	Version string
	OK      bool
}

// NamedPackage returns a successful PackageName.
func NamedPackage(name, version string) PackageName {
	return PackageName{Name: name, Version: version, OK: name != ""}
}

// MissingName is the PackageName of a snapshot without a derivable name.
var MissingName = PackageName{}

// String renders the name as name@version.
func (p PackageName) String() string {
	if !p.OK {
		return "<unnamed>"
	}
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "@" + p.Version
}
