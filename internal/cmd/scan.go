package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Alia5/resxext/internal/codegen/meta"
	"github.com/Alia5/resxext/internal/codegen/scanner"
)

type Scan struct {
	Source `embed:""`

	Format string `help:"Output format; auto picks text on a terminal and json otherwise" enum:"auto,text,json,yaml" default:"auto" env:"RESXEXT_SCAN_FORMAT"`

	out io.Writer
}

// ScanReport is the machine-readable scan result.
type ScanReport struct {
	Scanned int                   `json:"scanned" yaml:"scanned"`
	Skipped int                   `json:"skipped" yaml:"skipped"`
	Types   []meta.TypeDescriptor `json:"types" yaml:"types"`
}

// Run is called by Kong when the scan command is executed.
func (c *Scan) Run(logger *slog.Logger) error {
	prog, err := c.Program(logger)
	if err != nil {
		return err
	}

	md := scanner.New(logger, c.Signature()).ScanResourceClasses(prog)
	report := ScanReport{
		Scanned: md.Scanned,
		Skipped: md.Skipped,
		Types:   md.Matches.Types(),
	}

	w := c.out
	if w == nil {
		w = os.Stdout
	}
	return writeReport(w, resolveFormat(c.Format, w), report)
}

// ConsoleOutput returns the writer for non-error console logs of command,
// or nil when command prints its result to stdout and logs must go to
// stderr instead.
func ConsoleOutput(command string, stdout io.Writer) io.Writer {
	if name, _, _ := strings.Cut(command, " "); name == "scan" {
		return nil
	}
	return stdout
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" && format != "" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

func writeReport(w io.Writer, format string, report ScanReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		for _, td := range report.Types {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", td.FullName(), strings.Join(td.Properties, ", ")); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%d matched, %d scanned, %d skipped\n", len(report.Types), report.Scanned, report.Skipped)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
