package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

var (
	// ErrUnsupportedFormat is returned when an experiment file has an
	// unsupported extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Document is a parsed experiment file. It keeps three views of the same
// content: the typed Config, the generic Raw map used by expansion, and the
// yaml.Node tree so key and list order survive re-serialization.
type Document struct {
	// Path is the file the document was loaded from.
	Path string

	// Config is the typed view, with defaults applied.
	Config *Config

	// Raw is the generic view, as parsed (no defaults).
	Raw map[string]any

	// Root is the YAML document node, as parsed.
	Root *yaml.Node
}

// Name returns the document's base file name without extension.
func (d *Document) Name() string {
	if d.Path == "" {
		return "experiment"
	}
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and parses an experiment file.
// Supports .yaml, .yml, and .json.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
	case ".json":
		data, err = sigsyaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("converting JSON experiment file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse parses experiment YAML bytes.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, errors.New("empty document")
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("experiment document must be a mapping")
	}

	var cfg Config
	if err := root.Decode(&cfg); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := root.Decode(&raw); err != nil {
		return nil, err
	}

	return &Document{
		Config: cfg.WithDefaults(),
		Raw:    raw,
		Root:   &root,
	}, nil
}

// Encode re-serializes the document from its node tree, preserving the
// original key order and list order.
func (d *Document) Encode() ([]byte, error) {
	return EncodeNode(d.Root)
}

// EncodeNode serializes a YAML node with the normalized two-space indent.
func EncodeNode(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeValue serializes a generic document fragment as YAML. Map keys are
// emitted in the encoder's deterministic order.
func EncodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
