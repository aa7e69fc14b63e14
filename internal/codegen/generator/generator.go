package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Alia5/resxext/internal/codegen/generator/csharp"
	"github.com/Alia5/resxext/internal/codegen/meta"
	"github.com/Alia5/resxext/internal/codegen/output"
	"github.com/Alia5/resxext/internal/codegen/scanner"
)

// UnitDumper receives the text of every emitted unit, e.g. for trace output.
type UnitDumper interface {
	Dump(filename, text string)
}

type Generator struct {
	logger  *slog.Logger
	scanner *scanner.Scanner
	emit    csharp.Options
	jobs    int
	dumper  UnitDumper
}

type Option func(*Generator)

// WithSignature overrides the marker attribute set.
func WithSignature(sig scanner.Signature) Option {
	return func(g *Generator) { g.scanner = scanner.New(g.logger, sig) }
}

// WithQualifiedFilenames namespace-qualifies output filenames.
func WithQualifiedFilenames(qualify bool) Option {
	return func(g *Generator) { g.emit.QualifyFilenames = qualify }
}

// WithJobs bounds parallel emission. Values below 2 emit sequentially.
func WithJobs(n int) Option {
	return func(g *Generator) { g.jobs = n }
}

func WithDumper(d UnitDumper) Option {
	return func(g *Generator) { g.dumper = d }
}

func New(logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Generator{
		logger: logger,
		jobs:   1,
	}
	g.scanner = scanner.New(logger, scanner.ResourceAccessorSignature)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result summarises a run.
type Result struct {
	Scanned int
	Skipped int
	Matched int
	Units   []meta.EmissionUnit
}

// Scan runs the discovery phase.
func (g *Generator) Scan(prog meta.Program) *meta.Metadata {
	g.logger.Info("Scanning declarations for resource accessor classes")
	md := g.scanner.ScanResourceClasses(prog)
	g.logger.Info("Found resource accessor classes",
		"count", md.Matches.Len(),
		"scanned", md.Scanned,
		"skipped", md.Skipped)
	return md
}

// EmitAll renders one unit per matched type, in discovery order.
func (g *Generator) EmitAll(ctx context.Context, md *meta.Metadata) ([]meta.EmissionUnit, error) {
	types := md.Matches.Types()
	units := make([]meta.EmissionUnit, len(types))

	if g.jobs < 2 || len(types) < 2 {
		for i, td := range types {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			unit, err := csharp.Emit(td, g.emit)
			if err != nil {
				return nil, err
			}
			units[i] = unit
		}
		return units, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.jobs)
	for i, td := range types {
		i, td := i, td
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			unit, err := csharp.Emit(td, g.emit)
			if err != nil {
				return err
			}
			units[i] = unit
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// Run scans prog, emits every match and hands the units to sink in order.
func (g *Generator) Run(ctx context.Context, prog meta.Program, sink output.Sink) (Result, error) {
	md := g.Scan(prog)
	res := Result{Scanned: md.Scanned, Skipped: md.Skipped, Matched: md.Matches.Len()}

	units, err := g.EmitAll(ctx, md)
	if err != nil {
		return res, fmt.Errorf("emit: %w", err)
	}

	for _, unit := range units {
		if g.dumper != nil {
			g.dumper.Dump(unit.Filename, unit.Text)
		}
		if err := sink.Add(unit); err != nil {
			return res, err
		}
		g.logger.Debug("Emitted extensions", "type", unit.Source, "file", unit.Filename)
		res.Units = append(res.Units, unit)
	}

	g.logger.Info("Generation complete", "units", len(res.Units))
	return res, nil
}
