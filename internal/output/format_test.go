package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"JSON", FormatJSON},
		{"table", FormatTable},
		{"dir", FormatDir},
		{"directory", FormatDir},
		{"", FormatYAML},
		{"bogus", FormatYAML},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFormat(tt.in), tt.in)
	}
}

func TestFormatIsValid(t *testing.T) {
	assert.True(t, FormatYAML.IsValid())
	assert.True(t, FormatDir.IsValid())
	assert.False(t, Format("csv").IsValid())
}

func TestValidFormatLists(t *testing.T) {
	assert.Contains(t, ValidFormats(), "table")
	assert.NotContains(t, ValidExpandFormats(), "table")
	assert.NotContains(t, ValidReportFormats(), "dir")
}
