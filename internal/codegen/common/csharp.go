package common

import "unicode"

// keywords are the reserved C# keywords. Contextual keywords (get, value,
// record, ...) are valid identifiers and are not listed.
var keywords = map[string]struct{}{
	"abstract": {}, "as": {}, "base": {}, "bool": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "checked": {}, "class": {}, "const": {},
	"continue": {}, "decimal": {}, "default": {}, "delegate": {}, "do": {}, "double": {},
	"else": {}, "enum": {}, "event": {}, "explicit": {}, "extern": {}, "false": {},
	"finally": {}, "fixed": {}, "float": {}, "for": {}, "foreach": {}, "goto": {},
	"if": {}, "implicit": {}, "in": {}, "int": {}, "interface": {}, "internal": {},
	"is": {}, "lock": {}, "long": {}, "namespace": {}, "new": {}, "null": {},
	"object": {}, "operator": {}, "out": {}, "override": {}, "params": {}, "private": {},
	"protected": {}, "public": {}, "readonly": {}, "ref": {}, "return": {}, "sbyte": {},
	"sealed": {}, "short": {}, "sizeof": {}, "stackalloc": {}, "static": {}, "string": {},
	"struct": {}, "switch": {}, "this": {}, "throw": {}, "true": {}, "try": {},
	"typeof": {}, "uint": {}, "ulong": {}, "unchecked": {}, "unsafe": {}, "ushort": {},
	"using": {}, "virtual": {}, "void": {}, "volatile": {}, "while": {},
}

// IsKeyword reports whether name is a reserved C# keyword.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// IsIdentifierStart reports whether r may begin a C# identifier.
func IsIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

// IsIdentifierPart reports whether r may continue a C# identifier.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Cf)
}

// IsIdentifier reports whether name is a C# identifier, ignoring the '@'
// verbatim prefix.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !IsIdentifierStart(r) {
			return false
		}
		if i > 0 && !IsIdentifierPart(r) {
			return false
		}
	}
	return true
}

// EscapeKeyword prefixes reserved keywords with '@'.
func EscapeKeyword(name string) string {
	if IsKeyword(name) {
		return "@" + name
	}
	return name
}
