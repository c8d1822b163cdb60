package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/errors"
)

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram converts a Diagram to pretty-printed JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDiagramTo(d, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDiagram decodes and validates a diagram from bytes.
func UnmarshalDiagram(data []byte, format string) (Diagram, error) {
	return readDiagramFrom(bytes.NewReader(data), format)
}

// WriteDiagramFile writes a Diagram to path. The format follows the file
// extension: YAML for .yaml and .yml, JSON otherwise.
func WriteDiagramFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDiagramTo(d, f, FormatFromPath(path))
}

// WriteDiagram writes a Diagram to w in the given format.
func WriteDiagram(d Diagram, w io.Writer, format string) error {
	return writeDiagramTo(d, w, format)
}

// ReadDiagramFile reads and validates a diagram file. The format follows the
// file extension.
func ReadDiagramFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Diagram{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Diagram{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := readDiagramFrom(f, FormatFromPath(path))
	if err != nil {
		return Diagram{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadDiagram decodes and validates a diagram from r.
// An empty format means JSON.
func ReadDiagram(r io.Reader, format string) (Diagram, error) {
	return readDiagramFrom(r, format)
}

// FormatFromPath returns the diagram format implied by a file name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDiagramTo(d Diagram, w io.Writer, format string) error {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Connections == nil {
		d.Connections = []connection.Record{}
	}
	switch normalizeFormat(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported diagram format %q", format)
	}
	return nil
}

func readDiagramFrom(r io.Reader, format string) (Diagram, error) {
	var d Diagram
	switch normalizeFormat(format) {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return Diagram{}, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "decode")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
			return Diagram{}, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "decode")
		}
	default:
		return Diagram{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported diagram format %q", format)
	}
	if err := d.Validate(); err != nil {
		return Diagram{}, err
	}
	return d, nil
}

func normalizeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return format
	}
}
