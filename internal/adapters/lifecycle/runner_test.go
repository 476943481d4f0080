package lifecycle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rebuild/internal/adapters/lifecycle"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeManifest(t *testing.T, dir string, scripts map[string]string) {
	t.Helper()
	data, err := json.Marshal(domain.Manifest{Name: "native", Version: "1.0.0", Scripts: scripts})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName), data, 0o600))
}

func newRequest(pkgRoot string, stdout, stderr *bytes.Buffer) *domain.HookRequest {
	req := &domain.HookRequest{
		DepPath:        "/native/1.0.0",
		Package:        domain.NamedPackage("native", "1.0.0"),
		PkgRoot:        pkgRoot,
		RootModulesDir: filepath.Join(filepath.Dir(pkgRoot), "node_modules"),
		RawConfig:      map[string]string{"python": "/usr/bin/python3", "node-gyp": "/opt/gyp"},
		Env:            map[string]string{"CUSTOM": "yes"},
	}
	if stdout != nil {
		req.Stdout = stdout
	}
	if stderr != nil {
		req.Stderr = stderr
	}
	return req
}

func newRunner(t *testing.T) (*lifecycle.Runner, *mocks.MockLogger) {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	return lifecycle.NewRunner(logger), logger
}

func TestRunner_RunHook_Environment(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, map[string]string{
		"postinstall": `echo "$npm_lifecycle_event $npm_package_name@$npm_package_version"; ` +
			`echo "$npm_config_python $npm_config_node_gyp $npm_config_unsafe_perm $CUSTOM"; ` +
			`echo oops >&2`,
	})

	runner, _ := newRunner(t)
	var stdout, stderr bytes.Buffer

	err := runner.RunHook(context.Background(), domain.HookPostinstall, newRequest(dir, &stdout, &stderr))
	require.NoError(t, err)

	assert.Equal(t, "postinstall native@1.0.0\n/usr/bin/python3 /opt/gyp false yes\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestRunner_RunHook_WorkingDirectoryAndPath(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, map[string]string{"install": `pwd; echo "$PATH"`})

	runner, _ := newRunner(t)
	var stdout bytes.Buffer

	err := runner.RunHook(context.Background(), domain.HookInstall, newRequest(dir, &stdout, &bytes.Buffer{}))
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(stdout.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, []string{dir, resolved}, string(lines[0]))

	pathList := filepath.SplitList(string(lines[1]))
	require.GreaterOrEqual(t, len(pathList), 2)
	assert.Equal(t, filepath.Join(dir, "node_modules", ".bin"), pathList[0])
	assert.Equal(t, filepath.Join(filepath.Dir(dir), "node_modules", ".bin"), pathList[1])
}

func TestRunner_RunHook_MissingScript(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, map[string]string{"test": "exit 1"})

	runner, _ := newRunner(t)
	var stdout bytes.Buffer

	err := runner.RunHook(context.Background(), domain.HookPreinstall, newRequest(dir, &stdout, &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestRunner_RunHook_Failure(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, map[string]string{"install": "exit 3"})

	runner, _ := newRunner(t)

	err := runner.RunHook(context.Background(), domain.HookInstall, newRequest(dir, &bytes.Buffer{}, &bytes.Buffer{}))
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrHookFailed)
	assert.Contains(t, err.Error(), "native@1.0.0 install")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "install", zErr.Metadata()["hook"])
}

func TestRunner_RunHook_NodeGypFallback(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "binding.gyp"), []byte("{}"), 0o600))

	bin := filepath.Join(dir, "node_modules", ".bin")
	require.NoError(t, os.MkdirAll(bin, 0o750))
	//nolint:gosec // test fixture must be executable
	require.NoError(t, os.WriteFile(filepath.Join(bin, "node-gyp"), []byte("#!/bin/sh\necho \"gyp $1\"\n"), 0o755))

	runner, _ := newRunner(t)
	var stdout bytes.Buffer

	err := runner.RunHook(context.Background(), domain.HookInstall, newRequest(dir, &stdout, &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, "gyp rebuild\n", stdout.String())

	stdout.Reset()
	err = runner.RunHook(context.Background(), domain.HookPostinstall, newRequest(dir, &stdout, &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestRunner_RunHook_LogsWithoutWriters(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, map[string]string{
		"install": "echo line1; printf part1; sleep 0.1; echo part2; printf tail >&2",
	})

	runner, logger := newRunner(t)
	gomock.InOrder(
		logger.EXPECT().Info("native@1.0.0: line1"),
		logger.EXPECT().Info("native@1.0.0: part1part2"),
	)
	logger.EXPECT().Warn("native@1.0.0: tail")

	err := runner.RunHook(context.Background(), domain.HookInstall, newRequest(dir, nil, nil))
	require.NoError(t, err)
}

func TestRunner_RunHook_MissingManifest(t *testing.T) {
	runner, _ := newRunner(t)

	err := runner.RunHook(context.Background(), domain.HookInstall, newRequest(t.TempDir(), &bytes.Buffer{}, &bytes.Buffer{}))
	require.ErrorIs(t, err, domain.ErrManifestReadFailed)
}

func TestRunner_ReadManifest(t *testing.T) {
	runner, _ := newRunner(t)

	t.Run("found", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, map[string]string{"prepare": "tsc"})

		manifest, found, err := runner.ReadManifest(dir)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "native", manifest.Name)
		assert.True(t, manifest.HasScript(domain.HookPrepare))
	})

	t.Run("missing", func(t *testing.T) {
		manifest, found, err := runner.ReadManifest(t.TempDir())
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, manifest)
	})

	t.Run("malformed", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName), []byte("{"), 0o600))

		_, _, err := runner.ReadManifest(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrManifestParseFailed.Error())
	})
}
