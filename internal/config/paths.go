package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for cemctl.
type Paths struct {
	// ConfigFile is the path to the config file (~/.cemctl/config.yaml).
	ConfigFile string

	// HomeDir is the cemctl home directory (~/.cemctl).
	HomeDir string
}

// DefaultPaths returns the default paths for cemctl.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	toolHome := filepath.Join(homeDir, ".cemctl")

	return &Paths{
		ConfigFile: filepath.Join(toolHome, "config.yaml"),
		HomeDir:    toolHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If CEMCTL_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("CEMCTL_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// GetHomeDir returns the cemctl home directory path.
func GetHomeDir() (string, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.HomeDir, nil
}

// EnsureHomeDir creates the cemctl home directory if it doesn't exist.
func EnsureHomeDir() error {
	homeDir, err := GetHomeDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(homeDir, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
