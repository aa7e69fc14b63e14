// Package output stores emitted units.
package output

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Alia5/resxext/internal/codegen/generator/csharp"
	"github.com/Alia5/resxext/internal/codegen/meta"
)

// ErrDuplicateFilename is returned when two units of one run share a filename.
var ErrDuplicateFilename = errors.New("duplicate output filename")

// FileMode is the permission of every written unit.
const FileMode os.FileMode = 0o644

// Sink receives emitted units. Add either stores the whole unit or fails.
type Sink interface {
	Add(unit meta.EmissionUnit) error
}

// Memory keeps units in insertion order.
type Memory struct {
	mu    sync.Mutex
	units []meta.EmissionUnit
	names map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{names: make(map[string]struct{})}
}

func (m *Memory) Add(unit meta.EmissionUnit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.names[unit.Filename]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFilename, unit.Filename)
	}
	m.names[unit.Filename] = struct{}{}
	m.units = append(m.units, unit)
	return nil
}

// Units returns a copy of the stored units.
func (m *Memory) Units() []meta.EmissionUnit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]meta.EmissionUnit(nil), m.units...)
}

// Status tells what Dir did with a unit.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
)

// Dir writes units as files into a directory.
type Dir struct {
	path   string
	dryRun bool
	logger *slog.Logger

	mu      sync.Mutex
	written map[string]Status
}

// DirOption configures a Dir.
type DirOption func(*Dir)

// WithDryRun reports what would change without touching the filesystem.
func WithDryRun(dryRun bool) DirOption {
	return func(d *Dir) { d.dryRun = dryRun }
}

// WithLogger sets the logger used to report file changes.
func WithLogger(logger *slog.Logger) DirOption {
	return func(d *Dir) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDir creates a sink writing below path. The directory is created on the
// first write.
func NewDir(path string, opts ...DirOption) *Dir {
	d := &Dir{
		path:    path,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		written: make(map[string]Status),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path is the output directory.
func (d *Dir) Path() string { return d.path }

func (d *Dir) Add(unit meta.EmissionUnit) error {
	if unit.Filename == "" || unit.Filename != filepath.Base(unit.Filename) {
		return fmt.Errorf("invalid output filename %q", unit.Filename)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.written[unit.Filename]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFilename, unit.Filename)
	}

	target := filepath.Join(d.path, unit.Filename)
	status := StatusCreated
	existing, err := os.ReadFile(target)
	switch {
	case err == nil && bytes.Equal(existing, []byte(unit.Text)):
		status = StatusUnchanged
	case err == nil:
		status = StatusUpdated
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read %s: %w", target, err)
	}
	d.written[unit.Filename] = status

	if status == StatusUnchanged {
		d.logger.Debug("Output unchanged", "file", target)
		return nil
	}
	if d.dryRun {
		d.logger.Info("Would write file", "file", target, "status", status)
		return nil
	}

	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(d.path, "."+unit.Filename+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", unit.Filename, err)
	}
	if err := tmp.Chmod(FileMode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod %s: %w", unit.Filename, err)
	}
	if _, err := tmp.WriteString(unit.Text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", unit.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", unit.Filename, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", unit.Filename, err)
	}
	d.logger.Info("Wrote file", "file", target, "status", status)
	return nil
}

// Written returns the status of every unit added so far, keyed by filename.
func (d *Dir) Written() map[string]Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]Status, len(d.written))
	for k, v := range d.written {
		out[k] = v
	}
	return out
}

// Prune removes generated companion files in the directory that this run did
// not produce. Only files starting with the generated header are touched.
// It returns the removed filenames, sorted.
func (d *Dir) Prune() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var removed []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, csharp.FileSuffix) {
			continue
		}
		if _, ok := d.written[name]; ok {
			continue
		}
		target := filepath.Join(d.path, name)
		generated, err := hasGeneratedHeader(target)
		if err != nil {
			return removed, err
		}
		if !generated {
			d.logger.Debug("Keeping hand-written file", "file", target)
			continue
		}
		if d.dryRun {
			d.logger.Info("Would remove stale file", "file", target)
		} else {
			if err := os.Remove(target); err != nil {
				return removed, fmt.Errorf("remove %s: %w", target, err)
			}
			d.logger.Info("Removed stale file", "file", target)
		}
		removed = append(removed, name)
	}
	sort.Strings(removed)
	return removed, nil
}

func hasGeneratedHeader(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	return strings.TrimRight(line, "\r\n") == csharp.GeneratedHeader, nil
}
