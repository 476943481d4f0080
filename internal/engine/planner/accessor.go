// Package planner selects the part of a lockfile a rebuild has to consider and
// orders it into chunks.
package planner

import (
	"maps"
	"slices"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
)

// Accessor exposes a lockfile as a graph of node identifiers.
type Accessor struct {
	lockfile *domain.Lockfile
	resolver ports.DepPathResolver
}

// NewAccessor creates an Accessor over lockfile.
func NewAccessor(lockfile *domain.Lockfile, resolver ports.DepPathResolver) *Accessor {
	return &Accessor{
		lockfile: lockfile,
		resolver: resolver,
	}
}

// Snapshot returns the snapshot of id.
func (a *Accessor) Snapshot(id domain.InternedString) (domain.PackageSnapshot, bool) {
	return a.lockfile.Snapshot(id)
}

// EntryNodes resolves the project's top-level dependencies admitted by policy.
// Development dependencies come first, then production, then optional ones.
func (a *Accessor) EntryNodes(policy domain.DependencyPolicy) []domain.InternedString {
	var groups []map[string]string
	if policy.Development {
		groups = append(groups, a.lockfile.DevDependencies)
	}
	if policy.Production {
		groups = append(groups, a.lockfile.Dependencies)
	}
	if policy.Optional {
		groups = append(groups, a.lockfile.OptionalDependencies)
	}

	seen := domain.NewNodeSet()
	var entries []domain.InternedString
	for _, refs := range groups {
		for _, id := range a.resolveAll(refs) {
			if !seen.Has(id) {
				seen.Add(id)
				entries = append(entries, id)
			}
		}
	}
	return entries
}

// Children resolves the dependencies of id. Optional dependencies are
// included when includeOptional is set. References that do not resolve are
// left out.
func (a *Accessor) Children(id domain.InternedString, includeOptional bool) []domain.InternedString {
	snap, ok := a.lockfile.Snapshot(id)
	if !ok {
		return nil
	}
	children := a.resolveAll(snap.Dependencies)
	if includeOptional {
		for _, child := range a.resolveAll(snap.OptionalDependencies) {
			if !slices.Contains(children, child) {
				children = append(children, child)
			}
		}
	}
	return children
}

func (a *Accessor) resolveAll(refs map[string]string) []domain.InternedString {
	out := make([]domain.InternedString, 0, len(refs))
	for _, name := range slices.Sorted(maps.Keys(refs)) {
		if id, ok := a.resolver.Resolve(name, refs[name]); ok {
			out = append(out, id)
		}
	}
	return out
}
