package lifecycle

import (
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/rebuild/internal/core/domain"
)

// hookEnvironment returns the npm_* variables and the PATH prefix of a hook.
func hookEnvironment(hook domain.Hook, script string, manifest *domain.Manifest, req *domain.HookRequest) []string {
	name, version := manifest.Name, manifest.Version
	if name == "" {
		name = req.Package.Name
	}
	if version == "" {
		version = req.Package.Version
	}

	env := []string{
		"npm_lifecycle_event=" + string(hook),
		"npm_lifecycle_script=" + script,
		"npm_package_name=" + name,
		"npm_package_version=" + version,
		"npm_config_unsafe_perm=" + strconv.FormatBool(req.UnsafePerm),
		"PWD=" + req.PkgRoot,
	}
	for _, key := range slices.Sorted(maps.Keys(req.RawConfig)) {
		env = append(env, "npm_config_"+configKey(key)+"="+req.RawConfig[key])
	}

	bins := []string{filepath.Join(req.PkgRoot, domain.ModulesDirName, domain.BinDirName)}
	if req.RootModulesDir != "" {
		bins = append(bins, filepath.Join(req.RootModulesDir, domain.BinDirName))
	}
	env = append(env, "PATH="+strings.Join(bins, string(os.PathListSeparator)))

	return env
}

func configKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// resolveEnvironment merges environment variables with the following
// priority, low to high: the system environment, the hook environment and
// the user-defined overrides. The hook's PATH is prepended to the system PATH.
func resolveEnvironment(sysEnv, hookEnv []string, userEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for _, entry := range hookEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	for k, v := range userEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
