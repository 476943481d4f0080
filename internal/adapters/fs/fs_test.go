package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/rebuild/internal/adapters/fs"
	"go.trai.ch/rebuild/internal/core/domain"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   node_modules/dep/index.js
	//   build/Release/addon.node
	//   src/addon.cc
	//   binding.gyp
	tmpDir := t.TempDir()
	mustWrite(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	mustWrite(t, filepath.Join(tmpDir, "node_modules", "dep", "index.js"), "module.exports = 1")
	mustWrite(t, filepath.Join(tmpDir, "build", "Release", "addon.node"), "binary")
	mustWrite(t, filepath.Join(tmpDir, "src", "addon.cc"), "int main() {}")
	mustWrite(t, filepath.Join(tmpDir, "binding.gyp"), "{}")
	mustWrite(t, filepath.Join(tmpDir, "debug.log"), "noise")

	var files []string
	for path := range fs.NewWalker().WalkFiles(tmpDir, []string{"node_modules", "build", "*.log"}) {
		rel, err := filepath.Rel(tmpDir, path)
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, filepath.ToSlash(rel))
	}

	want := []string{"binding.gyp", "src/addon.cc"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("expected %v, got %v", want, files)
		}
	}
}

func TestWalker_SkipsSymlinks(t *testing.T) {
	base := t.TempDir()
	tmpDir := filepath.Join(base, "pkg")
	mustWrite(t, filepath.Join(tmpDir, "index.js"), "module.exports = 1")
	mustWrite(t, filepath.Join(base, "other", "lib.js"), "other")
	if err := os.Symlink(filepath.Join(base, "other"), filepath.Join(tmpDir, "other")); err != nil {
		t.Skip("symlinks not supported:", err)
	}
	if err := os.Symlink(filepath.Join(tmpDir, "index.js"), filepath.Join(tmpDir, "alias.js")); err != nil {
		t.Fatal(err)
	}

	var files []string
	for path := range fs.NewWalker().WalkFiles(tmpDir, nil) {
		files = append(files, filepath.Base(path))
	}
	if len(files) != 1 || files[0] != "index.js" {
		t.Errorf("expected only index.js, got %v", files)
	}
}

func TestWalker_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		mustWrite(t, filepath.Join(tmpDir, name), name)
	}

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("expected a single file before stopping, got %d", count)
	}
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	mustWrite(t, path, "hello world")

	hasher := fs.NewHasher(fs.NewWalker())

	hash1, err := hasher.ComputeFileHash(path)
	if err != nil {
		t.Fatalf("ComputeFileHash failed: %v", err)
	}
	if hash1 == 0 {
		t.Error("expected non-zero hash")
	}

	hash2, err := hasher.ComputeFileHash(path)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != hash2 {
		t.Error("expected deterministic hash")
	}
}

func TestHasher_Fingerprint(t *testing.T) {
	pkgRoot := t.TempDir()
	mustWrite(t, filepath.Join(pkgRoot, "package.json"), `{"name":"native"}`)
	mustWrite(t, filepath.Join(pkgRoot, "binding.gyp"), "{}")

	hasher := fs.NewHasher(fs.NewWalker())
	hooks := domain.DependencyHooks(domain.PackageSnapshot{})

	newRequest := func() *domain.HookRequest {
		return &domain.HookRequest{
			DepPath:   "/native/1.0.0",
			Package:   domain.NamedPackage("native", "1.0.0"),
			PkgRoot:   pkgRoot,
			RawConfig: map[string]string{"python": "python3"},
			Env:       map[string]string{"KEY": "VALUE"},
		}
	}

	base, err := hasher.Fingerprint(newRequest(), hooks)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if len(base) != 16 {
		t.Errorf("expected a 16 digit hex fingerprint, got %q", base)
	}

	again, err := hasher.Fingerprint(newRequest(), hooks)
	if err != nil {
		t.Fatal(err)
	}
	if base != again {
		t.Error("expected deterministic fingerprint")
	}

	changes := map[string]func(req *domain.HookRequest) []domain.Hook{
		"hooks": func(*domain.HookRequest) []domain.Hook {
			return domain.DependencyHooks(domain.PackageSnapshot{Prepare: true})
		},
		"config": func(req *domain.HookRequest) []domain.Hook {
			req.RawConfig["python"] = "python2"
			return hooks
		},
		"env": func(req *domain.HookRequest) []domain.Hook {
			req.Env["KEY"] = "OTHER"
			return hooks
		},
		"unsafe perm": func(req *domain.HookRequest) []domain.Hook {
			req.UnsafePerm = true
			return hooks
		},
	}
	for name, change := range changes {
		req := newRequest()
		got, err := hasher.Fingerprint(req, change(req))
		if err != nil {
			t.Fatal(err)
		}
		if got == base {
			t.Errorf("expected fingerprint to change with %s", name)
		}
	}

	// Build output does not count as input.
	mustWrite(t, filepath.Join(pkgRoot, "build", "Release", "addon.node"), "binary")
	afterBuild, err := hasher.Fingerprint(newRequest(), hooks)
	if err != nil {
		t.Fatal(err)
	}
	if afterBuild != base {
		t.Error("expected build output to be ignored")
	}

	mustWrite(t, filepath.Join(pkgRoot, "binding.gyp"), `{"targets":[]}`)
	afterEdit, err := hasher.Fingerprint(newRequest(), hooks)
	if err != nil {
		t.Fatal(err)
	}
	if afterEdit == base {
		t.Error("expected fingerprint to change when a build file changes")
	}
}

func TestHasher_FingerprintMissingPackage(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	_, err := hasher.Fingerprint(&domain.HookRequest{PkgRoot: filepath.Join(t.TempDir(), "absent")}, nil)
	if err == nil {
		t.Fatal("expected an error for a missing package directory")
	}
}
