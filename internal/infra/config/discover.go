// Where: cli/internal/infra/config/discover.go
// What: Defaults file discovery.
// Why: Find the nearest project defaults file from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otlp2parquet/cli/internal/meta"
)

var errDefaultsNotFound = errors.New("defaults file not found")

// ResolveDefaults returns the defaults to apply and the file they came from.
// An explicit path must exist. Otherwise the nearest
// .<brand>/config.yaml above startDir is used, and a missing file yields
// empty defaults and an empty path.
func ResolveDefaults(explicit, startDir string) (Defaults, string, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		cfg, err := LoadDefaults(path)
		if err != nil {
			return Defaults{}, "", err
		}
		return cfg, path, nil
	}
	path, err := FindDefaultsFile(startDir)
	if err != nil {
		if errors.Is(err, errDefaultsNotFound) {
			return DefaultDefaults(), "", nil
		}
		return Defaults{}, "", err
	}
	cfg, err := LoadDefaults(path)
	if err != nil {
		return Defaults{}, "", err
	}
	return cfg, path, nil
}

// FindDefaultsFile searches upward from startDir for .<brand>/config.yaml.
func FindDefaultsFile(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", errDefaultsNotFound
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, meta.HomeDir, meta.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errDefaultsNotFound
}
