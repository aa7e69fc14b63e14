package scanner

import (
	"io"
	"log/slog"
	"sort"

	"github.com/Alia5/resxext/internal/codegen/meta"
)

// Marker attributes emitted by the strongly typed resource builder on every
// generated resource-accessor class.
const (
	GeneratedCodeAttribute       = "System.CodeDom.Compiler.GeneratedCodeAttribute"
	DebuggerNonUserCodeAttribute = "System.Diagnostics.DebuggerNonUserCodeAttribute"
	CompilerGeneratedAttribute   = "System.Runtime.CompilerServices.CompilerGeneratedAttribute"
)

// Signature is a closed set of fully-qualified attribute names. A type matches
// only if its attributes are exactly this set.
type Signature struct {
	names map[string]struct{}
}

// ResourceAccessorSignature recognises classes produced by the ResX designer.
var ResourceAccessorSignature = NewSignature(
	GeneratedCodeAttribute,
	DebuggerNonUserCodeAttribute,
	CompilerGeneratedAttribute,
)

func NewSignature(names ...string) Signature {
	s := Signature{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Len is the attribute count a matching type must carry.
func (s Signature) Len() int { return len(s.names) }

// Names returns the signature members sorted.
func (s Signature) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Matches reports whether attrs carries exactly the signature: the same
// count and every marker present. Order is irrelevant.
func (s Signature) Matches(attrs []string) bool {
	if len(s.names) == 0 || len(attrs) != len(s.names) {
		return false
	}
	present := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if _, ok := s.names[a]; !ok {
			return false
		}
		present[a] = struct{}{}
	}
	return len(present) == len(s.names)
}

// Scanner finds generated resource-accessor classes in a Program.
type Scanner struct {
	sig    Signature
	logger *slog.Logger
}

// New creates a Scanner. A nil logger discards output; an empty signature
// falls back to ResourceAccessorSignature.
func New(logger *slog.Logger, sig Signature) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if sig.Len() == 0 {
		sig = ResourceAccessorSignature
	}
	return &Scanner{sig: sig, logger: logger}
}

// ScanResourceClasses walks every declaration of prog once and collects the
// matching types in discovery order. Unresolvable candidates are skipped.
func (s *Scanner) ScanResourceClasses(prog meta.Program) *meta.Metadata {
	md := meta.NewMetadata()
	if prog == nil {
		return md
	}

	for _, decl := range prog.Declarations() {
		if !decl.HasAttributes() {
			continue
		}
		md.Scanned++

		sym, err := decl.Symbol()
		if err != nil {
			md.Skipped++
			s.logger.Debug("Skipping unresolvable declaration", "error", err)
			continue
		}

		if !s.sig.Matches(sym.Attributes()) {
			continue
		}

		if md.Matches.Add(sym) {
			s.logger.Debug("Found resource accessor class",
				"type", sym.ID(),
				"properties", len(sym.Properties()))
		}
	}

	return md
}
