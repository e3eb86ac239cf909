// SPDX-License-Identifier: MPL-2.0

// Package schemafile reads help schema documents written in CUE, JSON, TOML
// or YAML.
//
// Every format is decoded into the same generic document and then checked by
// schema.Parse, so the field rules and error messages do not depend on the
// format. CUE documents are additionally checked against the #Schema
// definition in schema.cue, which rejects unknown fields.
package schemafile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/invowk/helpout/pkg/cueutil"
	"github.com/invowk/helpout/pkg/schema"
)

// Supported document formats.
const (
	FormatCUE  Format = "cue"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// MaxFileSize is the largest document Load and Decode accept.
const MaxFileSize = cueutil.DefaultMaxFileSize

var (
	//go:embed schema.cue
	definition []byte

	// ErrUnknownFormat is returned for file extensions and format names that
	// are not supported.
	ErrUnknownFormat = errors.New("unknown schema format")

	// ErrNotObject is returned when a document's top level is not an object.
	ErrNotObject = errors.New("schema document must be an object")
)

type (
	// Format names a document syntax.
	Format string

	// File is a schema document loaded from disk.
	File struct {
		Path   string
		Format Format
		Schema *schema.Schema
		Spec   *schema.Spec
	}
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCUE, FormatJSON, FormatTOML, FormatYAML}
}

// ParseFormat accepts a format name or a file extension, with or without the
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "cue":
		return FormatCUE, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Decode reads data in the given format into a generic document. filename is
// used in error messages only.
func Decode(data []byte, format Format, filename string) (map[string]any, error) {
	if err := cueutil.CheckFileSize(data, MaxFileSize, filename); err != nil {
		return nil, err
	}

	var raw any
	switch format {
	case FormatCUE:
		doc, err := cueutil.Load[map[string]any](definition, data, "#Schema", cueutil.WithFilename(filename))
		if err != nil {
			return nil, err
		}
		return doc.Value, nil
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		raw = doc
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", filename, ErrNotObject)
	}
	return doc, nil
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format, filename string) (*schema.Schema, *schema.Spec, error) {
	doc, err := Decode(data, format, filename)
	if err != nil {
		return nil, nil, err
	}
	return schema.Parse(doc)
}

// Load reads, decodes and validates the document at path. The format is
// taken from the file extension.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, spec, err := Parse(data, format, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Format: format, Schema: s, Spec: spec}, nil
}
