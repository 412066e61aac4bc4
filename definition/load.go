package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files that are neither YAML nor JSON.
var ErrUnknownFormat = errors.New("unknown book format")

// Format is a book encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("definition.FormatOf: %q: %w", path, ErrUnknownFormat)
}

// Load reads and validates the book at path.
func Load(path string) (*Book, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition.Load: %w", err)
	}
	b, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("definition.Load: %s: %w", path, err)
	}
	return b, nil
}

// Decode reads a book from r. Unknown fields are rejected in both formats.
func Decode(r io.Reader, format Format) (*Book, error) {
	var b Book
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&b); err != nil {
			return nil, err
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("definition.Decode: %q: %w", format, ErrUnknownFormat)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
