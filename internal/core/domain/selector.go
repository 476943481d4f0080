package domain

import "github.com/Masterminds/semver/v3"

// PackageSelector identifies packages to rebuild, either by exact name or by
// name plus a semver range.
type PackageSelector struct {
	// Raw is the argument the selector was parsed from.
	Raw  string
	Name string
	// Range is nil for exact-name selectors.
	Range *semver.Constraints
}

// IsRange reports whether the selector carries a version constraint.
func (s PackageSelector) IsRange() bool {
	return s.Range != nil
}

// String returns the original argument.
func (s PackageSelector) String() string {
	if s.Raw != "" {
		return s.Raw
	}
	if s.Range != nil {
		return s.Name + "@" + s.Range.String()
	}
	return s.Name
}
