package testing

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Alia5/resxext/internal/codegen/meta"
)

// Designer marker attributes, fully qualified.
var DesignerAttributes = []string{
	"System.CodeDom.Compiler.GeneratedCodeAttribute",
	"System.Diagnostics.DebuggerNonUserCodeAttribute",
	"System.Runtime.CompilerServices.CompilerGeneratedAttribute",
}

// MockSymbol is a hand-built meta.TypeSymbol.
type MockSymbol struct {
	IDValue    string
	NS         string
	TypeName   string
	Containing []string
	Attrs      []string
	Props      []string
}

func (m *MockSymbol) ID() string {
	if m.IDValue != "" {
		return m.IDValue
	}
	parts := []string{}
	if m.NS != "" {
		parts = append(parts, m.NS)
	}
	parts = append(parts, m.Containing...)
	parts = append(parts, m.TypeName)
	return strings.Join(parts, ".")
}

func (m *MockSymbol) Namespace() string         { return m.NS }
func (m *MockSymbol) Name() string              { return m.TypeName }
func (m *MockSymbol) ContainingTypes() []string { return m.Containing }
func (m *MockSymbol) Attributes() []string      { return m.Attrs }
func (m *MockSymbol) Properties() []string      { return m.Props }

// MockDeclaration resolves to Sym, or fails with Err. Resolved counts Symbol
// calls.
type MockDeclaration struct {
	Sym      *MockSymbol
	Err      error
	Resolved int
}

func (d *MockDeclaration) HasAttributes() bool {
	return d.Err != nil || (d.Sym != nil && len(d.Sym.Attrs) > 0)
}

func (d *MockDeclaration) Symbol() (meta.TypeSymbol, error) {
	d.Resolved++
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Sym, nil
}

// MockProgram serves a fixed declaration list.
type MockProgram struct {
	Decls []*MockDeclaration
}

func (p *MockProgram) Declarations() []meta.Declaration {
	out := make([]meta.Declaration, len(p.Decls))
	for i, d := range p.Decls {
		out[i] = d
	}
	return out
}

// ErrUnresolvable is the error carried by Broken declarations.
var ErrUnresolvable = errors.New("unresolvable declaration")

// Resource builds a declaration carrying the designer markers.
func Resource(ns, name string, props ...string) *MockDeclaration {
	return Declared(ns, name, DesignerAttributes, props...)
}

// Declared builds a declaration with the given attributes.
func Declared(ns, name string, attrs []string, props ...string) *MockDeclaration {
	return &MockDeclaration{Sym: &MockSymbol{NS: ns, TypeName: name, Attrs: attrs, Props: props}}
}

// Broken builds a declaration whose symbol cannot be resolved.
func Broken() *MockDeclaration {
	return &MockDeclaration{Err: ErrUnresolvable}
}

// Program wraps declarations into a MockProgram.
func Program(decls ...*MockDeclaration) *MockProgram {
	return &MockProgram{Decls: decls}
}

// DesignerSource renders a class the way the ResX designer generates it.
func DesignerSource(t *testing.T, ns, name string, keys ...string) string {
	t.Helper()
	var b fmtBuilder
	b.line("//------------------------------------------------------------------------------")
	b.line("// <auto-generated>")
	b.line("//     This code was generated by a tool.")
	b.line("// </auto-generated>")
	b.line("//------------------------------------------------------------------------------")
	b.line("")
	b.line("namespace %s {", ns)
	b.line("    using System;")
	b.line("")
	b.line("    [global::System.CodeDom.Compiler.GeneratedCodeAttribute(\"System.Resources.Tools.StronglyTypedResourceBuilder\", \"17.0.0.0\")]")
	b.line("    [global::System.Diagnostics.DebuggerNonUserCodeAttribute()]")
	b.line("    [global::System.Runtime.CompilerServices.CompilerGeneratedAttribute()]")
	b.line("    internal class %s {", name)
	b.line("        private static global::System.Resources.ResourceManager resourceMan;")
	b.line("        private static global::System.Globalization.CultureInfo resourceCulture;")
	b.line("")
	b.line("        [global::System.Diagnostics.CodeAnalysis.SuppressMessageAttribute(\"Microsoft.Performance\", \"CA1811:AvoidUncalledPrivateCode\")]")
	b.line("        internal %s() {", name)
	b.line("        }")
	b.line("")
	b.line("        [global::System.ComponentModel.EditorBrowsableAttribute(global::System.ComponentModel.EditorBrowsableState.Advanced)]")
	b.line("        internal static global::System.Resources.ResourceManager ResourceManager {")
	b.line("            get {")
	b.line("                if (object.ReferenceEquals(resourceMan, null)) {")
	b.line("                    global::System.Resources.ResourceManager temp = new global::System.Resources.ResourceManager(\"%s.%s\", typeof(%s).Assembly);", ns, name, name)
	b.line("                    resourceMan = temp;")
	b.line("                }")
	b.line("                return resourceMan;")
	b.line("            }")
	b.line("        }")
	b.line("")
	b.line("        [global::System.ComponentModel.EditorBrowsableAttribute(global::System.ComponentModel.EditorBrowsableState.Advanced)]")
	b.line("        internal static global::System.Globalization.CultureInfo Culture {")
	b.line("            get {")
	b.line("                return resourceCulture;")
	b.line("            }")
	b.line("            set {")
	b.line("                resourceCulture = value;")
	b.line("            }")
	b.line("        }")
	for _, s := range keys {
		b.line("")
		b.line("        /// <summary>")
		b.line("        ///   Looks up a localized string similar to {0}.")
		b.line("        /// </summary>")
		b.line("        internal static string %s {", s)
		b.line("            get {")
		b.line("                return ResourceManager.GetString(\"%s\", resourceCulture);", s)
		b.line("            }")
		b.line("        }")
	}
	b.line("    }")
	b.line("}")
	return b.String()
}

type fmtBuilder struct {
	lines []string
}

func (b *fmtBuilder) line(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *fmtBuilder) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}
