package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidSelector is returned when a selector argument uses a specifier that is neither a version nor a range.
	ErrInvalidSelector = zerr.New("invalid selector")

	// ErrCyclicGraph is returned when the relevant subgraph contains a dependency cycle.
	ErrCyclicGraph = zerr.New("cycle detected in rebuild graph")

	// ErrRebuildFailed is returned when a non-optional package fails to build.
	ErrRebuildFailed = zerr.New("rebuild failed")

	// ErrHookFailed is returned when a lifecycle hook exits with an error.
	ErrHookFailed = zerr.New("lifecycle hook failed")

	// ErrProjectScriptFailed is returned when a lifecycle script of the project itself fails.
	ErrProjectScriptFailed = zerr.New("project lifecycle script failed")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when the lockfile cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrModulesReadFailed is returned when the installation state file cannot be read.
	ErrModulesReadFailed = zerr.New("failed to read modules state")

	// ErrModulesParseFailed is returned when the installation state file cannot be parsed.
	ErrModulesParseFailed = zerr.New("failed to parse modules state")

	// ErrModulesWriteFailed is returned when the installation state file cannot be written.
	ErrModulesWriteFailed = zerr.New("failed to write modules state")

	// ErrManifestReadFailed is returned when a package manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestParseFailed is returned when a package manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrInvalidSettings is returned when the merged settings fail validation.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrInvalidClosureScope is returned when an unknown closure scope is requested.
	ErrInvalidClosureScope = zerr.New("invalid closure scope, expected 'dependents' or 'dependencies'")

	// ErrStoreCreateFailed is returned when the build record directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrUnknownExporter is returned when an unsupported telemetry exporter is configured.
	ErrUnknownExporter = zerr.New("unknown telemetry exporter")

	// ErrTelemetrySetupFailed is returned when the telemetry providers cannot be created.
	ErrTelemetrySetupFailed = zerr.New("failed to set up telemetry")
)

// ErrorWith wraps err and attaches the given key-value pairs as metadata.
// The result still matches err with errors.Is.
func ErrorWith(err error, kv ...any) error {
	out := zerr.Wrap(err, "")
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		out = zerr.With(out, key, kv[i+1])
	}
	return out
}

// RebuildError describes the fatal build failure of a single package.
type RebuildError struct {
	Node    InternedString
	Name    string
	Version string
	Err     error
}

// Error implements the error interface.
func (e *RebuildError) Error() string {
	return fmt.Sprintf("%s for %s: %v", ErrRebuildFailed.Error(), e.Node.String(), e.Err)
}

// Unwrap exposes both ErrRebuildFailed and the underlying hook error.
func (e *RebuildError) Unwrap() []error {
	return []error{ErrRebuildFailed, e.Err}
}
