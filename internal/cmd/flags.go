// Package cmd provides CLI command implementations.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/conceptlab/cemctl/internal/config"
)

// resolveFlag returns the local flag value if set, otherwise the fallback.
func resolveFlag(local, fallback string) string {
	if local != "" {
		return local
	}
	return fallback
}

// resolveExperimentPath resolves an experiment file argument. Bare names
// that do not exist in the working directory are looked up under the
// configured experiments directory, trying the name as-is and with .yaml
// and .yml extensions.
func resolveExperimentPath(arg string) string {
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	if strings.ContainsRune(arg, os.PathSeparator) {
		return arg
	}

	dir := GetToolConfig().ExperimentsDir
	if dir == "" {
		return arg
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return arg
	}

	for _, name := range []string{arg, arg + ".yaml", arg + ".yml"} {
		candidate := filepath.Join(expanded, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return arg
}
