package domain

// ModulesState is the installation state persisted next to the installed packages.
// Fields the rebuild does not interpret are carried through unchanged.
type ModulesState struct {
	LayoutVersion     int                 `yaml:"layoutVersion,omitempty"`
	PackageManager    string              `yaml:"packageManager,omitempty"`
	Store             string              `yaml:"store,omitempty"`
	IndependentLeaves bool                `yaml:"independentLeaves"`
	ShamefullyFlatten bool                `yaml:"shamefullyFlatten"`
	HoistedAliases    map[string][]string `yaml:"hoistedAliases,omitempty"`
	Skipped           []string            `yaml:"skipped"`
	PendingBuilds     []string            `yaml:"pendingBuilds"`
	// Extra keeps keys written by newer installers.
	Extra map[string]any `yaml:",inline"`
}

// HasPendingProject reports whether the project itself awaits its lifecycle scripts.
func (s *ModulesState) HasPendingProject() bool {
	if s == nil {
		return false
	}
	for _, id := range s.PendingBuilds {
		if id == ProjectRootID {
			return true
		}
	}
	return false
}

// Pending returns the pending build markers as node identifiers.
func (s *ModulesState) Pending() []InternedString {
	if s == nil {
		return nil
	}
	return NewInternedStrings(s.PendingBuilds)
}

// ClearPending returns a copy of the state with no pending builds.
func (s ModulesState) ClearPending() ModulesState {
	s.PendingBuilds = []string{}
	if s.Skipped == nil {
		s.Skipped = []string{}
	}
	return s
}
