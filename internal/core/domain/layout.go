package domain

import "path/filepath"

const (
	// ModulesDirName is the name of the installed packages directory.
	ModulesDirName = "node_modules"

	// ModulesStateFileName is the installation state file inside the modules directory.
	ModulesStateFileName = ".modules.yaml"

	// RecordDirName is the build record directory inside the modules directory.
	RecordDirName = ".rebuild"

	// BinDirName is the executables directory inside a modules directory.
	BinDirName = ".bin"

	// ManifestFileName is the package manifest file name.
	ManifestFileName = "package.json"

	// DefaultLockfileName is the lockfile looked up when none is configured.
	DefaultLockfileName = "pnpm-lock.yaml"

	// LegacyLockfileName is read when DefaultLockfileName is absent.
	LegacyLockfileName = "shrinkwrap.yaml"

	// SettingsFileName is the optional project settings file.
	SettingsFileName = "rebuild.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultRecordPath returns the build record directory relative to the modules directory.
func DefaultRecordPath(modulesDir string) string {
	return filepath.Join(modulesDir, RecordDirName)
}
