package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// BuildIgnores are skipped when fingerprinting a package directory. They hold
// installed dependencies or build output rather than build inputs.
var BuildIgnores = []string{domain.ModulesDirName, "build", "prebuilds"}

// Hasher fingerprints the build inputs of installed packages.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint computes a single hash over the hook set, the hook settings
// and the files of req.PkgRoot.
func (h *Hasher) Fingerprint(req *domain.HookRequest, hooks []domain.Hook) (string, error) {
	hasher := xxhash.New()

	h.hashRequest(req, hooks, hasher)
	h.hashMap(req.RawConfig, hasher)
	h.hashMap(req.Env, hasher)

	if err := h.hashPackageFiles(req.PkgRoot, hasher); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashRequest(req *domain.HookRequest, hooks []domain.Hook, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(req.DepPath)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(req.Package.String())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(strconv.FormatBool(req.UnsafePerm))
	_, _ = hasher.Write([]byte{0})

	for _, hook := range hooks {
		_, _ = hasher.WriteString(string(hook))
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashMap hashes key-value pairs in a deterministic order.
func (h *Hasher) hashMap(m map[string]string, hasher *xxhash.Digest) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(m[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

func (h *Hasher) hashPackageFiles(root string, hasher *xxhash.Digest) error {
	info, err := os.Stat(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat package directory"), "path", root)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("package root is not a directory"), "path", root)
	}

	for path := range h.walker.WalkFiles(root, BuildIgnores) {
		if err := h.hashFile(root, path, hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(root, path string, mainHasher io.Writer) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	_, _ = mainHasher.Write([]byte(filepath.ToSlash(rel)))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
