package domain

import "io"

// Hook is the name of a lifecycle script.
type Hook string

// Lifecycle hooks understood by the rebuild.
const (
	HookPreinstall  Hook = "preinstall"
	HookInstall     Hook = "install"
	HookPostinstall Hook = "postinstall"
	HookPrepublish  Hook = "prepublish"
	HookPrepare     Hook = "prepare"
)

// ProjectRootID is the pending-build marker that stands for the project itself.
const ProjectRootID = "."

// ProjectHooks is the fixed order in which the project's own scripts run.
var ProjectHooks = []Hook{HookPreinstall, HookInstall, HookPostinstall, HookPrepublish, HookPrepare}

// DependencyHooks returns the hooks run for an installed dependency.
func DependencyHooks(snap PackageSnapshot) []Hook {
	hooks := []Hook{HookPreinstall, HookInstall, HookPostinstall}
	if snap.Prepare {
		hooks = append(hooks, HookPrepare)
	}
	return hooks
}

// HookRequest carries everything a hook runner needs to invoke one script.
type HookRequest struct {
	// DepPath is the node identifier, or ProjectRootID for the project.
	DepPath string
	Package PackageName
	// PkgRoot is the directory holding the package manifest.
	PkgRoot string
	// RootModulesDir is the project's top-level node_modules directory.
	RootModulesDir string
	UnsafePerm     bool
	// RawConfig is passed to scripts as npm_config_* variables.
	RawConfig map[string]string
	// Env holds extra environment variables.
	Env map[string]string

	Stdout io.Writer
	Stderr io.Writer
}

// Manifest is the subset of a package.json the rebuild reads.
type Manifest struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Scripts map[string]string `json:"scripts"`
}

// HasScript reports whether the manifest declares hook.
func (m *Manifest) HasScript(hook Hook) bool {
	if m == nil {
		return false
	}
	_, ok := m.Scripts[string(hook)]
	return ok
}
