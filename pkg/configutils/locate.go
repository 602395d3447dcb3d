package configutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigPath is the environment variable consulted for a config file
// location when none is given explicitly.
const EnvConfigPath = "ODM_CONFIG"

// DefaultFileName is the config file name probed in the default locations.
const DefaultFileName = "config.yaml"

// LocateConfigFile resolves the configuration file to load. Candidates are
// tried in order and the first existing file wins:
//
//  1. the explicit path, when non-empty (an error if it does not exist)
//  2. $ODM_CONFIG
//  3. ./config.yaml
//  4. ~/.odm/config.yaml
func LocateConfigFile(explicit string) (string, error) {
	if explicit != "" {
		path := ExpandHome(explicit)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return path, nil
	}

	candidates := []string{os.Getenv(EnvConfigPath), DefaultFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".odm", DefaultFileName))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		candidate = ExpandHome(candidate)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		tried = append(tried, candidate)
	}

	return "", fmt.Errorf("no config file found, tried: %s", strings.Join(tried, ", "))
}

// ExpandHome replaces a leading "~" with the current user's home directory.
// The path is returned unchanged when the home directory cannot be resolved.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
