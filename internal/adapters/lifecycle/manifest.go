package lifecycle

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// ReadManifest loads the package.json in dir.
func (r *Runner) ReadManifest(dir string) (*domain.Manifest, bool, error) {
	path := filepath.Join(dir, domain.ManifestFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is a package directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	return &manifest, true, nil
}
