// Package diff compares experiment documents with a YAML-aware, semantic
// diff. Key order and comments never count as changes; only values do.
package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// Options configures a comparison.
type Options struct {
	// FromName labels the left-hand input in the report.
	FromName string

	// ToName labels the right-hand input in the report.
	ToName string

	// UseColor enables colorized report output.
	UseColor bool
}

// Result holds the outcome of one comparison.
type Result struct {
	// HasChanges indicates if the documents differ.
	HasChanges bool

	// Count is the number of individual differences.
	Count int

	// Report is the rendered human-readable report. Empty when the
	// documents match.
	Report string
}

// Summary returns a one-line description of the result.
func (r *Result) Summary() string {
	if !r.HasChanges {
		return "No changes"
	}
	if r.Count == 1 {
		return "1 difference"
	}
	return fmt.Sprintf("%d differences", r.Count)
}

// Compare diffs two YAML documents.
func Compare(from, to []byte, opts Options) (*Result, error) {
	fromInput, err := parseYAMLInput(opts.FromName, from)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", opts.FromName, err)
	}

	toInput, err := parseYAMLInput(opts.ToName, to)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", opts.ToName, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return nil, fmt.Errorf("comparing documents: %w", err)
	}

	result := &Result{Count: len(report.Diffs)}
	if result.Count == 0 {
		return result, nil
	}

	rendered, err := renderReport(report, opts.UseColor)
	if err != nil {
		return nil, err
	}

	result.HasChanges = true
	result.Report = rendered
	return result, nil
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	if name == "" {
		name = "document"
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderReport renders a dyff report to a string.
func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
