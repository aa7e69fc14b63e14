// Package manifest feeds type information exported by another tool (an IDE
// or a build task with compiler access) into the scanner.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Alia5/resxext/internal/codegen/meta"
)

// ErrMissingName is returned by Symbol for entries without a type name.
var ErrMissingName = errors.New("manifest entry has no name")

// Format of a manifest document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Type is one declared type.
type Type struct {
	Namespace       string   `json:"namespace" yaml:"namespace"`
	Name            string   `json:"name" yaml:"name"`
	ContainingTypes []string `json:"containingTypes,omitempty" yaml:"containingTypes,omitempty"`
	Attributes      []string `json:"attributes" yaml:"attributes"`
	Properties      []string `json:"properties" yaml:"properties"`
}

// Document is the manifest root.
type Document struct {
	Types []Type `json:"types" yaml:"types"`
}

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads the manifest at path.
func Load(path string) (*Program, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prog, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// Decode parses a manifest document.
func Decode(r io.Reader, format Format) (*Program, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json manifest: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return New(doc), nil
}

// Program serves manifest entries as declarations.
type Program struct {
	decls []meta.Declaration
}

// New wraps a decoded document.
func New(doc Document) *Program {
	p := &Program{decls: make([]meta.Declaration, 0, len(doc.Types))}
	for i := range doc.Types {
		p.decls = append(p.decls, &entry{index: i, t: doc.Types[i]})
	}
	return p
}

func (p *Program) Declarations() []meta.Declaration { return p.decls }

type entry struct {
	index int
	t     Type
}

func (e *entry) HasAttributes() bool { return len(e.t.Attributes) > 0 }

func (e *entry) Symbol() (meta.TypeSymbol, error) {
	name := strings.TrimPrefix(e.t.Name, "@")
	if name == "" {
		return nil, fmt.Errorf("types[%d]: %w", e.index, ErrMissingName)
	}
	containing := make([]string, len(e.t.ContainingTypes))
	for i, c := range e.t.ContainingTypes {
		containing[i] = strings.TrimPrefix(c, "@")
	}
	props := make([]string, len(e.t.Properties))
	for i, prop := range e.t.Properties {
		props[i] = strings.TrimPrefix(prop, "@")
	}
	attrs := make([]string, len(e.t.Attributes))
	for i, a := range e.t.Attributes {
		attrs[i] = strings.TrimPrefix(a, "global::")
	}
	return &symbol{
		namespace:  strings.TrimPrefix(e.t.Namespace, "global::"),
		name:       name,
		containing: containing,
		attributes: attrs,
		properties: props,
	}, nil
}

type symbol struct {
	namespace  string
	name       string
	containing []string
	attributes []string
	properties []string
}

func (s *symbol) ID() string {
	parts := make([]string, 0, len(s.containing)+2)
	if s.namespace != "" {
		parts = append(parts, s.namespace)
	}
	parts = append(parts, s.containing...)
	parts = append(parts, s.name)
	return strings.Join(parts, ".")
}

func (s *symbol) Namespace() string         { return s.namespace }
func (s *symbol) Name() string              { return s.name }
func (s *symbol) ContainingTypes() []string { return s.containing }
func (s *symbol) Attributes() []string      { return s.attributes }
func (s *symbol) Properties() []string      { return s.properties }
