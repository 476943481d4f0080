package lockfile

import (
	"net/url"
	"path/filepath"
	"strings"

	"go.trai.ch/rebuild/internal/core/domain"
)

// DepPath implements ports.DepPathResolver for registry-relative dependency
// paths of the form /name/version and /@scope/name/version.
type DepPath struct{}

// NewDepPath creates a new DepPath.
func NewDepPath() *DepPath {
	return &DepPath{}
}

// Resolve turns the reference of dependency name into a dependency path.
// Linked dependencies live outside the lockfile and do not resolve.
func (DepPath) Resolve(name, reference string) (domain.InternedString, bool) {
	switch {
	case strings.HasPrefix(reference, "link:"):
		return domain.InternedString{}, false
	case strings.HasPrefix(reference, "file:"):
		return domain.NewInternedString(reference), true
	case !strings.Contains(reference, "/"):
		return domain.NewInternedString("/" + name + "/" + reference), true
	default:
		return domain.NewInternedString(reference), true
	}
}

// NameVersion prefers the name recorded in the snapshot and falls back to
// parsing the dependency path.
func (DepPath) NameVersion(id domain.InternedString, snap domain.PackageSnapshot) domain.PackageName {
	if snap.Name != "" {
		return domain.NamedPackage(snap.Name, snap.Version)
	}

	path := id.String()
	if !strings.HasPrefix(path, "/") {
		return domain.MissingName
	}

	parts := strings.Split(path[1:], "/")
	if strings.HasPrefix(parts[0], "@") {
		if len(parts) < 3 {
			return domain.MissingName
		}
		parts = []string{parts[0] + "/" + parts[1], parts[2]}
	}
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return domain.MissingName
	}

	version, _, _ := strings.Cut(parts[1], "_")
	return domain.NamedPackage(parts[0], version)
}

// InstallDir returns <modulesDir>/.<registry host><depPath>/node_modules/<name>.
// Dependency paths that are not registry-relative already carry their host.
func (DepPath) InstallDir(modulesDir, registry string, id domain.InternedString, name string) string {
	absolute := id.String()
	if strings.HasPrefix(absolute, "/") {
		absolute = RegistryHost(registry) + absolute
	}
	return filepath.Join(modulesDir, "."+absolute, domain.ModulesDirName, name)
}

// RegistryHost returns the directory name used for packages of registry.
func RegistryHost(registry string) string {
	u, err := url.Parse(registry)
	if err != nil || u.Host == "" {
		return strings.Trim(registry, "/")
	}
	return strings.ReplaceAll(u.Host, ":", "+")
}
