package cmd

import (
	"errors"
	"log/slog"

	"github.com/Alia5/resxext/internal/codegen/csparse"
	"github.com/Alia5/resxext/internal/codegen/manifest"
	"github.com/Alia5/resxext/internal/codegen/meta"
	"github.com/Alia5/resxext/internal/codegen/scanner"
)

// Source selects the declarations to scan. It is shared by generate and scan.
type Source struct {
	Paths    []string `arg:"" optional:"" name:"path" help:"C# source files or directories to scan (default: current directory)" type:"path"`
	Manifest string   `help:"Read declarations from a JSON or YAML manifest instead of C# sources" type:"path" env:"RESXEXT_MANIFEST"`
	Include  []string `help:"Glob patterns selecting source files inside directories" placeholder:"GLOB" env:"RESXEXT_INCLUDE"`
	Exclude  []string `help:"Glob patterns removing source files inside directories, in addition to bin/, obj/ and generated extension files" placeholder:"GLOB" env:"RESXEXT_EXCLUDE"`
	Marker   []string `help:"Fully qualified marker attribute; repeat to replace the default signature" placeholder:"ATTRIBUTE" env:"RESXEXT_MARKER"`
}

// Program loads the selected declarations.
func (s *Source) Program(logger *slog.Logger) (meta.Program, error) {
	if s.Manifest != "" {
		if len(s.Paths) > 0 {
			return nil, errors.New("source paths and --manifest are mutually exclusive")
		}
		logger.Debug("Loading manifest", "file", s.Manifest)
		return manifest.Load(s.Manifest)
	}

	paths := s.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	logger.Debug("Loading C# sources", "paths", paths, "include", s.Include, "exclude", s.Exclude)
	prog, err := csparse.LoadPaths(paths, s.Include, s.Exclude)
	if err != nil {
		return nil, err
	}
	for _, f := range prog.Files() {
		if f.Err != nil {
			logger.Warn("Source file only partially read", "file", f.Name, "error", f.Err)
		}
	}
	logger.Debug("Loaded C# sources", "files", len(prog.Files()))
	return prog, nil
}

// Signature returns the configured markers, or the default signature.
func (s *Source) Signature() scanner.Signature {
	if len(s.Marker) == 0 {
		return scanner.ResourceAccessorSignature
	}
	return scanner.NewSignature(s.Marker...)
}
