package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/textpolish/assets"
	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/pkg/filesystem"
	"github.com/doeshing/textpolish/internal/ports"
)

// EnvConfigPath overrides the config location.
const EnvConfigPath = "TEXTPOLISH_CONFIG"

// FileLoader loads YAML configuration from ~/.textpolish/config.yaml (overridable via TEXTPOLISH_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path falls back to the environment and then the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
		if err := os.WriteFile(path, data, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, err
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Parse decodes YAML and fills unset fields. Unknown keys are rejected so typos surface.
func Parse(data []byte) (domain.Config, error) {
	var cfg domain.Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Default returns the embedded default configuration.
func Default() domain.Config {
	cfg, err := Parse(assets.DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.Language == "" {
		cfg.Preferences.Language = string(domain.DefaultLanguage)
	}
	if cfg.Preferences.DefaultAction == "" {
		cfg.Preferences.DefaultAction = string(domain.ActionFixGrammar)
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = int(domain.DefaultRequestTimeout.Seconds())
	}
	if cfg.Tiers.Light == "" && len(cfg.Models) > 0 {
		cfg.Tiers.Light = cfg.Models[0].Name
	}
	if cfg.Tiers.Heavy == "" {
		cfg.Tiers.Heavy = cfg.Tiers.Light
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = domain.StorageBackendFile
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = domain.DefaultHistoryKey
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(filesystem.AppDir(), "polish.log")
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
