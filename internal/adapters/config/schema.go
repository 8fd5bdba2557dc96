package config

// Configfile represents the structure of the .cjsguard.yaml configuration file.
type Configfile struct {
	Version         string   `yaml:"version"`
	Extensions      []string `yaml:"extensions"`
	TypedExtensions []string `yaml:"typedExtensions"`
	Ignore          []string `yaml:"ignore"`
	Exempt          []string `yaml:"exempt"`
	Baseline        string   `yaml:"baseline"`
	Format          string   `yaml:"format"`
}
