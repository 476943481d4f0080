// Package config loads the project settings file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the name of the settings file in the project root.
const SettingsFile = domain.SettingsFileName

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	Filename string
	logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a Loader reading SettingsFile.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Filename: SettingsFile,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load decodes the settings file under root over base. Keys the file does not
// set keep the value from base. A missing file is not an error.
func (l *Loader) Load(root string, base domain.Settings) (domain.Settings, error) {
	path := filepath.Join(root, l.Filename)
	settings := base
	settings.ProjectRoot = root

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Debug("no " + l.Filename + " in " + root)
	case err != nil:
		return base, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	default:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return base, zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "path", path)
		}
		settings.ProjectRoot = root
	}

	if err := l.Validate(&settings); err != nil {
		return base, err
	}
	return settings, nil
}

// Validate checks settings against their struct tags.
func (l *Loader) Validate(settings *domain.Settings) error {
	err := l.validate.Struct(settings)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) && len(invalid) > 0 {
		first := invalid[0]
		return domain.ErrorWith(domain.ErrInvalidSettings,
			"field", first.Field(),
			"rule", first.Tag(),
			"value", first.Value(),
		)
	}
	return zerr.Wrap(err, domain.ErrInvalidSettings.Error())
}
