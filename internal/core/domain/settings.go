package domain

// ClosureScope selects which nodes around the targets form the relevant subgraph.
type ClosureScope string

const (
	// ScopeDependents keeps targets and every node on a path from an entry to a target.
	ScopeDependents ClosureScope = "dependents"
	// ScopeDependencies keeps targets and their transitive dependencies.
	ScopeDependencies ClosureScope = "dependencies"
)

// ParseClosureScope validates s. The empty string selects ScopeDependents.
func ParseClosureScope(s string) (ClosureScope, error) {
	switch ClosureScope(s) {
	case "", ScopeDependents:
		return ScopeDependents, nil
	case ScopeDependencies:
		return ScopeDependencies, nil
	default:
		return "", ErrorWith(ErrInvalidClosureScope, "scope", s)
	}
}

// DefaultChildConcurrency is the number of hooks allowed to run at once.
const DefaultChildConcurrency = 5

// Settings holds the options of a rebuild invocation.
type Settings struct {
	// ProjectRoot is the absolute directory holding the lockfile.
	ProjectRoot string `yaml:"-" validate:"required"`
	// ModulesDir overrides <root>/node_modules.
	ModulesDir string `yaml:"modulesDir"`
	// Lockfile overrides the lockfile name.
	Lockfile string `yaml:"lockfile"`

	ChildConcurrency int  `yaml:"childConcurrency" validate:"min=1,max=256"`
	Production       bool `yaml:"production"`
	Development      bool `yaml:"development"`
	Optional         bool `yaml:"optional"`
	UnsafePerm       bool `yaml:"unsafePerm"`

	Closure ClosureScope `yaml:"closure" validate:"omitempty,oneof=dependents dependencies"`

	// RawConfig is handed to lifecycle scripts as npm_config_* variables.
	RawConfig map[string]string `yaml:"config"`
	// Env holds extra environment variables for lifecycle scripts.
	Env map[string]string `yaml:"env"`

	// Telemetry selects the telemetry exporter: none or stdout.
	Telemetry string `yaml:"telemetry" validate:"omitempty,oneof=none stdout"`
}

// DefaultSettings returns the settings used when neither a file nor flags override them.
func DefaultSettings() Settings {
	return Settings{
		ChildConcurrency: DefaultChildConcurrency,
		Production:       true,
		Development:      true,
		Optional:         true,
		Closure:          ScopeDependents,
		Telemetry:        "none",
	}
}

// DependencyPolicy returns which top-level dependency kinds seed the traversal.
func (s *Settings) DependencyPolicy() DependencyPolicy {
	return DependencyPolicy{
		Production:  s.Production,
		Development: s.Development,
		Optional:    s.Optional,
	}
}

// DependencyPolicy selects the top-level dependency kinds and whether optional
// edges are followed.
type DependencyPolicy struct {
	Production  bool
	Development bool
	Optional    bool
}
