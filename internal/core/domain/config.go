package domain

import "slices"

// Output formats understood by the reporter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the resolved cjsguard configuration.
type Config struct {
	// Path is the config file the values came from. Empty when defaults are used.
	Path string
	// Extensions selects which files are linted.
	Extensions []string
	// TypedExtensions selects which import targets are analyzed.
	TypedExtensions []string
	// Ignore lists directory names skipped while walking.
	Ignore []string
	// Exempt lists extra specifiers treated like Node.js built-ins.
	Exempt []string
	// Baseline is the path of a baseline file of accepted findings.
	Baseline string
	// Format is the report format.
	Format string
}

// DefaultTypedExtensions are the extensions of typed source files.
func DefaultTypedExtensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts"}
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Extensions:      DefaultTypedExtensions(),
		TypedExtensions: DefaultTypedExtensions(),
		Ignore:          []string{NodeModulesDirName, ".git", ".jj", "dist"},
		Format:          FormatText,
	}
}

// HasExtension reports whether ext is one of the linted file extensions.
func (c *Config) HasExtension(ext string) bool {
	return slices.Contains(c.Extensions, ext)
}
