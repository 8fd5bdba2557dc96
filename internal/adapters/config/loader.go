// Package config provides the configuration loader for cjsguard.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// currentVersion is the only configuration schema version understood.
const currentVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches cwd and its parents for the configuration file. The default
// configuration is returned when none exists.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, ok := findConfiguration(cwd)
	if !ok {
		return domain.DefaultConfig(), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile reads and validates the configuration file at path.
func (l *Loader) LoadFile(path string) (*domain.Config, error) {
	var file Configfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if file.Version == "" {
		l.Logger.Warn(fmt.Sprintf("'version' missing in %s, assuming %q", path, currentVersion))
	}

	cfg, err := resolve(path, &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or passed explicitly by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// resolve validates the file and merges it over the defaults.
func resolve(configPath string, file *Configfile) (*domain.Config, error) {
	if file.Version != "" && file.Version != currentVersion {
		return nil, zerr.With(domain.ErrInvalidConfig, "version", file.Version)
	}

	cfg := domain.DefaultConfig()
	cfg.Path = configPath

	if file.Extensions != nil {
		exts, err := normalizeExtensions(file.Extensions)
		if err != nil {
			return nil, zerr.With(err, "field", "extensions")
		}
		cfg.Extensions = exts
	}

	if file.TypedExtensions != nil {
		exts, err := normalizeExtensions(file.TypedExtensions)
		if err != nil {
			return nil, zerr.With(err, "field", "typedExtensions")
		}
		cfg.TypedExtensions = exts
	}

	if file.Ignore != nil {
		cfg.Ignore = file.Ignore
	}
	cfg.Exempt = file.Exempt

	if file.Baseline != "" {
		cfg.Baseline = file.Baseline
		if !filepath.IsAbs(cfg.Baseline) {
			cfg.Baseline = filepath.Join(filepath.Dir(configPath), cfg.Baseline)
		}
	}

	if file.Format != "" {
		if file.Format != domain.FormatText && file.Format != domain.FormatJSON {
			return nil, zerr.With(domain.ErrInvalidConfig, "format", file.Format)
		}
		cfg.Format = file.Format
	}

	return cfg, nil
}

// normalizeExtensions adds a missing leading dot and rejects empty entries.
func normalizeExtensions(exts []string) ([]string, error) {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return nil, zerr.With(domain.ErrInvalidConfig, "extension", ext)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out, nil
}
