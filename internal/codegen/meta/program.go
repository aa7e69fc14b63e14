package meta

import "strings"

// Program is a read-only view over every type declaration a host can see.
// Implementations are borrowed for the duration of a single run.
type Program interface {
	Declarations() []Declaration
}

// Declaration is one syntactic type declaration. A partial type may have
// several declarations resolving to the same TypeSymbol.
type Declaration interface {
	// HasAttributes reports whether the declaration carries any attribute
	// section. It must not require symbol resolution.
	HasAttributes() bool
	// Symbol resolves the declared type. An error means the declaration is
	// malformed or otherwise unresolvable.
	Symbol() (TypeSymbol, error)
}

// TypeSymbol is the resolved view of a declared type.
type TypeSymbol interface {
	// ID is stable for the lifetime of the Program and unique per type.
	ID() string
	// Namespace is the containing namespace display string, "" for the
	// global namespace.
	Namespace() string
	Name() string
	// ContainingTypes lists enclosing type names, outermost first.
	ContainingTypes() []string
	// Attributes returns fully-qualified attribute names in declaration order.
	Attributes() []string
	// Properties returns property names in declaration order.
	Properties() []string
}

// TypeDescriptor is an immutable snapshot of a matched TypeSymbol. The
// emitter works on descriptors only.
type TypeDescriptor struct {
	ID              string   `json:"id" yaml:"id"`
	Namespace       string   `json:"namespace" yaml:"namespace"`
	Name            string   `json:"name" yaml:"name"`
	ContainingTypes []string `json:"containingTypes,omitempty" yaml:"containingTypes,omitempty"`
	Properties      []string `json:"properties" yaml:"properties"`
}

// Describe copies the emission-relevant parts of sym.
func Describe(sym TypeSymbol) TypeDescriptor {
	return TypeDescriptor{
		ID:              sym.ID(),
		Namespace:       sym.Namespace(),
		Name:            sym.Name(),
		ContainingTypes: append([]string(nil), sym.ContainingTypes()...),
		Properties:      append([]string(nil), sym.Properties()...),
	}
}

// FullName is the dotted name, e.g. "App.Resources.Strings".
func (t TypeDescriptor) FullName() string {
	parts := make([]string, 0, len(t.ContainingTypes)+2)
	if t.Namespace != "" {
		parts = append(parts, t.Namespace)
	}
	parts = append(parts, t.ContainingTypes...)
	parts = append(parts, t.Name)
	return strings.Join(parts, ".")
}

// MemberRole is the role of a property, derived from its name.
type MemberRole int

const (
	RoleResourceString MemberRole = iota
	RoleResourceManager
	RoleCulture
)

func (r MemberRole) String() string {
	switch r {
	case RoleResourceManager:
		return "resourceManager"
	case RoleCulture:
		return "culture"
	default:
		return "resourceString"
	}
}

// ClassifyMember maps a property name to its role. The match is exact and
// case-sensitive; every name has a role.
func ClassifyMember(name string) MemberRole {
	switch name {
	case "ResourceManager":
		return RoleResourceManager
	case "Culture":
		return RoleCulture
	default:
		return RoleResourceString
	}
}
