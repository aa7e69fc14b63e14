package csparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Alia5/resxext/internal/codegen/meta"
)

// Default source selection used when no include or exclude patterns are given.
var (
	DefaultIncludes = []string{"**/*.cs"}
	DefaultExcludes = []string{"**/bin/**", "**/obj/**", "**/*.Designer.Extensions.cs"}
)

// Program is a set of parsed files that resolve attribute names against each
// other. Partial class declarations spread over several files are merged.
type Program struct {
	files    []*File
	decls    []meta.Declaration
	resolver *resolver
}

// NewProgram links files into a Program.
func NewProgram(files ...*File) *Program {
	prog := &Program{files: files, resolver: newResolver(files)}

	byID := make(map[string]*declaration)
	for _, f := range files {
		for _, c := range f.classes {
			if c.err != nil || c.name == "" {
				prog.decls = append(prog.decls, &declaration{prog: prog, parts: []*classDecl{c}})
				continue
			}
			id := c.id()
			if d, ok := byID[id]; ok {
				d.parts = append(d.parts, c)
				continue
			}
			d := &declaration{prog: prog, parts: []*classDecl{c}}
			byID[id] = d
			prog.decls = append(prog.decls, d)
		}
	}
	return prog
}

// Declarations returns the class declarations in file order, one per
// distinct type.
func (p *Program) Declarations() []meta.Declaration { return p.decls }

// Files returns the parsed files.
func (p *Program) Files() []*File { return p.files }

type declaration struct {
	prog  *Program
	parts []*classDecl
}

func (d *declaration) HasAttributes() bool {
	for _, c := range d.parts {
		if len(c.sections) > 0 {
			return true
		}
	}
	return false
}

func (d *declaration) Symbol() (meta.TypeSymbol, error) {
	var errs []error
	for _, c := range d.parts {
		if c.err != nil {
			errs = append(errs, fmt.Errorf("%s:%d: %w", c.file.Name, c.line, c.err))
		}
		for _, sec := range c.sections {
			if sec.err != nil {
				errs = append(errs, fmt.Errorf("%s:%d: %w", c.file.Name, c.line, sec.err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	first := d.parts[0]
	sym := &symbol{
		id:         first.id(),
		namespace:  first.scope.ns,
		name:       first.name,
		containing: first.containing,
	}
	seen := make(map[string]struct{})
	for _, c := range d.parts {
		for _, sec := range c.sections {
			for _, ref := range sec.attrs {
				sym.attributes = append(sym.attributes, d.prog.resolver.resolve(c.scope, ref))
			}
		}
		for _, prop := range c.props {
			if _, dup := seen[prop]; dup {
				continue
			}
			seen[prop] = struct{}{}
			sym.properties = append(sym.properties, prop)
		}
	}
	return sym, nil
}

type symbol struct {
	id         string
	namespace  string
	name       string
	containing []string
	attributes []string
	properties []string
}

func (s *symbol) ID() string                { return s.id }
func (s *symbol) Namespace() string         { return s.namespace }
func (s *symbol) Name() string              { return s.name }
func (s *symbol) ContainingTypes() []string { return s.containing }
func (s *symbol) Attributes() []string      { return s.attributes }
func (s *symbol) Properties() []string      { return s.properties }

// Collect returns the slash-separated paths under fsys selected by includes
// minus excludes, sorted. Empty includes fall back to DefaultIncludes;
// DefaultExcludes always apply in addition to excludes.
func Collect(fsys fs.FS, includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	excludes = append(append([]string(nil), DefaultExcludes...), excludes...)
	for _, pat := range append(append([]string(nil), includes...), excludes...) {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid pattern %q", pat)
		}
	}

	seen := make(map[string]struct{})
	var paths []string
	for _, pat := range includes {
		matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pat, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok || excluded(m, excludes) {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func excluded(path string, excludes []string) bool {
	for _, pat := range excludes {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}

// Load parses every selected file of fsys into a Program.
func Load(fsys fs.FS, includes, excludes []string) (*Program, error) {
	paths, err := Collect(fsys, includes, excludes)
	if err != nil {
		return nil, err
	}
	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		src, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, Parse(path, src))
	}
	return NewProgram(files...), nil
}

// LoadPaths parses files and directory trees from the local filesystem.
// Files named directly are always read; directories are walked with the
// include and exclude patterns.
func LoadPaths(paths []string, includes, excludes []string) (*Program, error) {
	var files []*File
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			src, err := os.ReadFile(root)
			if err != nil {
				return nil, err
			}
			files = append(files, Parse(filepath.ToSlash(root), src))
			continue
		}

		fsys := os.DirFS(root)
		rel, err := Collect(fsys, includes, excludes)
		if err != nil {
			return nil, err
		}
		for _, path := range rel {
			src, err := fs.ReadFile(fsys, path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			files = append(files, Parse(filepath.ToSlash(filepath.Join(root, path)), src))
		}
	}
	return NewProgram(files...), nil
}
