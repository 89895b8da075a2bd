// Package configloader discovers and loads swiftfmt configuration files.
package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/config"
)

// ConfigFileName is the file searched for during discovery.
const ConfigFileName = ".swiftfmt.yaml"

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where upward discovery starts.
	WorkingDir string

	// ExplicitPath, when set, bypasses discovery; a missing file is then
	// an error rather than a fallback to defaults.
	ExplicitPath string
}

// LoadResult carries the loaded configuration and its provenance.
type LoadResult struct {
	Config *config.Config

	// Path is the config file that was loaded, or empty when defaults
	// were used.
	Path string
}

// Load resolves the configuration: an explicit path wins, otherwise the
// nearest config file walking upward from WorkingDir, otherwise defaults.
func Load(opts LoadOptions) (*LoadResult, error) {
	logger := logging.Default()

	path := opts.ExplicitPath
	if path == "" {
		found, err := Discover(opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			logger.Debug("no config file found, using defaults")
			return &LoadResult{Config: config.NewConfig()}, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(fmt.Errorf("invalid config %s", path), err)
	}

	logger.Debug("loaded config", logging.FieldConfig, path)
	return &LoadResult{Config: cfg, Path: path}, nil
}

// Discover walks upward from dir looking for ConfigFileName, returning the
// first hit or empty when the filesystem root is reached without one.
func Discover(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
