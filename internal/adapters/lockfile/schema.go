package lockfile

// lockfileDTO is the on-disk layout of pnpm-lock.yaml and shrinkwrap.yaml.
type lockfileDTO struct {
	LockfileVersion      string                 `yaml:"lockfileVersion"`
	ShrinkwrapVersion    string                 `yaml:"shrinkwrapVersion"`
	Registry             string                 `yaml:"registry"`
	Dependencies         map[string]string      `yaml:"dependencies"`
	DevDependencies      map[string]string      `yaml:"devDependencies"`
	OptionalDependencies map[string]string      `yaml:"optionalDependencies"`
	Packages             map[string]snapshotDTO `yaml:"packages"`
}

// snapshotDTO is a single entry of the packages section.
type snapshotDTO struct {
	ID                   string            `yaml:"id"`
	Name                 string            `yaml:"name"`
	Version              string            `yaml:"version"`
	Dependencies         map[string]string `yaml:"dependencies"`
	OptionalDependencies map[string]string `yaml:"optionalDependencies"`
	Optional             bool              `yaml:"optional"`
	Prepare              bool              `yaml:"prepare"`
	RequiresBuild        bool              `yaml:"requiresBuild"`
}
