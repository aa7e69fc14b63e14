package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/resxext/internal/codegen/generator"
	"github.com/Alia5/resxext/internal/codegen/output"
	"github.com/Alia5/resxext/internal/log"
)

type Generate struct {
	Source `embed:""`

	Output           string `short:"o" help:"Output directory for the generated extension classes" default:"./Generated" type:"path" env:"RESXEXT_OUTPUT"`
	QualifyFilenames bool   `help:"Prefix output filenames with namespace and containing types" env:"RESXEXT_QUALIFY_FILENAMES"`
	Jobs             int    `help:"Number of units emitted in parallel" default:"1" env:"RESXEXT_JOBS"`
	DryRun           bool   `help:"Report what would be written without touching the output directory" env:"RESXEXT_DRY_RUN"`
	Prune            bool   `help:"Remove previously generated files that are no longer produced" env:"RESXEXT_PRUNE"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger, dumper log.Dumper) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.Execute(ctx, logger, dumper)
}

// Execute runs one generation pass into the output directory.
func (c *Generate) Execute(ctx context.Context, logger *slog.Logger, dumper log.Dumper) error {
	logger.Info("Starting resource extension generation", "output", c.Output, "dryRun", c.DryRun)

	prog, err := c.Program(logger)
	if err != nil {
		return err
	}

	gen := generator.New(logger,
		generator.WithSignature(c.Signature()),
		generator.WithQualifiedFilenames(c.QualifyFilenames),
		generator.WithJobs(c.Jobs),
		generator.WithDumper(dumper),
	)
	sink := output.NewDir(c.Output, output.WithDryRun(c.DryRun), output.WithLogger(logger))

	res, err := gen.Run(ctx, prog, sink)
	if err != nil {
		return err
	}

	if c.Prune {
		removed, err := sink.Prune()
		if err != nil {
			return fmt.Errorf("prune: %w", err)
		}
		if len(removed) > 0 {
			logger.Info("Pruned stale files", "count", len(removed))
		}
	}

	changed := 0
	for _, st := range sink.Written() {
		if st != output.StatusUnchanged {
			changed++
		}
	}
	logger.Info("Resource extension generation complete",
		"matched", res.Matched,
		"units", len(res.Units),
		"changed", changed)
	return nil
}
