package templates

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateExperimentName checks if an experiment name is valid.
// Names become run directories and result file prefixes, so they are
// restricted to letters, digits, hyphens and underscores.
func ValidateExperimentName(name string) error {
	if name == "" {
		return fmt.Errorf("experiment name cannot be empty")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("invalid experiment name %q: contains invalid character %q", name, r)
		}
	}

	if !unicode.IsLetter(rune(name[0])) {
		return fmt.Errorf("invalid experiment name %q: must start with a letter", name)
	}

	return nil
}

// DeriveExperimentName derives an experiment name from a target path.
// The file extension is dropped and dots become underscores.
func DeriveExperimentName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, ".", "_")
	if base == "" || base == "_" {
		return "experiment"
	}
	return base
}
