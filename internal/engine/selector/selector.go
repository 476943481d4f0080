// Package selector parses rebuild selectors and matches them against lockfile snapshots.
package selector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
)

// Specifier kinds that cannot select installed packages.
const (
	KindTag       = "tag"
	KindAlias     = "alias"
	KindFile      = "file"
	KindDirectory = "directory"
	KindGit       = "git"
	KindRemote    = "remote"
	KindName      = "name"
)

var packageNameRegex = regexp.MustCompile(`^(@[a-zA-Z0-9\-~][a-zA-Z0-9\-._~]*/)?[a-zA-Z0-9\-~][a-zA-Z0-9\-._~]*$`)

var gitPrefixes = []string{"git+", "git:", "github:", "gitlab:", "bitbucket:", "gist:"}

// Parse turns one argument into a selector. A bare name selects by exact
// name; name@spec requires spec to be a version or a range.
func Parse(arg string) (domain.PackageSelector, error) {
	name, spec := split(arg)

	if kind, bad := classifyPath(name); bad {
		return domain.PackageSelector{}, invalid(arg, kind)
	}
	if !packageNameRegex.MatchString(name) {
		return domain.PackageSelector{}, invalid(arg, KindName)
	}
	if spec == "" {
		return domain.PackageSelector{Raw: arg, Name: name}, nil
	}
	if kind, bad := classifySpec(spec); bad {
		return domain.PackageSelector{}, invalid(arg, kind)
	}

	constraint, err := semver.NewConstraint(spec)
	if err != nil {
		return domain.PackageSelector{}, invalid(arg, KindTag)
	}
	return domain.PackageSelector{Raw: arg, Name: name, Range: constraint}, nil
}

// ParseAll parses every argument and stops at the first invalid one.
func ParseAll(args []string) ([]domain.PackageSelector, error) {
	selectors := make([]domain.PackageSelector, 0, len(args))
	for _, arg := range args {
		s, err := Parse(arg)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, s)
	}
	return selectors, nil
}

// Matches reports whether any selector accepts the package. Range selectors
// never match a package without a version.
func Matches(selectors []domain.PackageSelector, pkg domain.PackageName) bool {
	if !pkg.OK {
		return false
	}
	for _, s := range selectors {
		if s.Name != pkg.Name {
			continue
		}
		if !s.IsRange() {
			return true
		}
		if pkg.Version == "" {
			continue
		}
		v, err := semver.NewVersion(pkg.Version)
		if err != nil {
			continue
		}
		if s.Range.Check(v) {
			return true
		}
	}
	return false
}

// FindMatchingNodes returns every snapshot of the lockfile accepted by the selectors.
// Snapshots whose name cannot be derived are skipped with a warning.
func FindMatchingNodes(
	lockfile *domain.Lockfile,
	resolver ports.DepPathResolver,
	selectors []domain.PackageSelector,
	logger ports.Logger,
) domain.NodeSet {
	matched := domain.NewNodeSet()
	for _, id := range lockfile.PackageIDs() {
		snap, _ := lockfile.Snapshot(id)
		pkg := resolver.NameVersion(id, snap)
		if !pkg.OK {
			logger.Warn(fmt.Sprintf("skipping %s: cannot get the package name from the lockfile", id))
			continue
		}
		if Matches(selectors, pkg) {
			matched.Add(id)
		}
	}
	return matched
}

// split separates name and spec at the first "@" that is not a scope prefix.
func split(arg string) (name, spec string) {
	if len(arg) < 2 {
		return arg, ""
	}
	at := strings.Index(arg[1:], "@")
	if at < 0 {
		return arg, ""
	}
	at++
	return arg[:at], arg[at+1:]
}

func classifyPath(name string) (string, bool) {
	switch {
	case strings.HasPrefix(name, "."), strings.HasPrefix(name, "/"), strings.HasPrefix(name, "~"):
		return KindDirectory, true
	case strings.Contains(name, "://"):
		return KindRemote, true
	}
	return "", false
}

func classifySpec(spec string) (string, bool) {
	lower := strings.ToLower(spec)
	switch {
	case strings.HasPrefix(lower, "npm:"):
		return KindAlias, true
	case strings.HasPrefix(lower, "file:"), strings.HasPrefix(lower, "link:"):
		return KindFile, true
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return KindRemote, true
	case strings.HasPrefix(spec, "."), strings.HasPrefix(spec, "/"), strings.HasPrefix(spec, "~/"):
		return KindDirectory, true
	}
	for _, prefix := range gitPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return KindGit, true
		}
	}
	// user/repo shorthand
	if strings.Contains(spec, "/") {
		return KindGit, true
	}
	return "", false
}

func invalid(arg, kind string) error {
	err := fmt.Errorf("%w %q: rebuild can only select by version or range", domain.ErrInvalidSelector, arg)
	return domain.ErrorWith(err, "selector", arg, "kind", kind)
}
