package csparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Alia5/resxext/internal/codegen/common"
)

// ErrMalformed marks a declaration the reader could not fully recognise.
var ErrMalformed = errors.New("malformed declaration")

// File is one parsed C# source file.
type File struct {
	Name string
	// Err is the lexical error that cut the file short, if any. Declarations
	// read before the error are kept.
	Err error

	root          *scope
	globalUsings  []string
	globalAliases map[string]string
	classes       []*classDecl
}

// Classes returns the number of class declarations read from the file.
func (f *File) Classes() int { return len(f.classes) }

// scope is a namespace declaration (or the compilation unit) together with
// the using directives written inside it.
type scope struct {
	parent  *scope
	ns      string
	usings  []string
	aliases map[string]string
}

func (s *scope) addAlias(name, target string) {
	if s.aliases == nil {
		s.aliases = make(map[string]string)
	}
	s.aliases[name] = target
}

type attrRef struct {
	name   string // dotted, without "global::"
	global bool
}

type attrSection struct {
	target string
	attrs  []attrRef
	err    error
}

type classDecl struct {
	file       *File
	scope      *scope
	containing []string
	name       string
	arity      int
	line       int
	sections   []attrSection
	props      []string
	err        error
}

func (d *classDecl) id() string {
	parts := make([]string, 0, len(d.containing)+2)
	if d.scope.ns != "" {
		parts = append(parts, d.scope.ns)
	}
	parts = append(parts, d.containing...)
	name := d.name
	if d.arity > 0 {
		name = fmt.Sprintf("%s`%d", name, d.arity)
	}
	parts = append(parts, name)
	return strings.Join(parts, ".")
}

// Parse reads the type declarations of a single C# file. It never fails;
// problems are recorded on the File and on the affected declarations.
func Parse(name string, src []byte) *File {
	toks, err := tokenize(src)
	f := &File{Name: name, Err: err, root: &scope{}}
	p := &parser{toks: toks, file: f}
	p.namespaceBody(f.root, false)
	return f
}

type parser struct {
	toks []token
	pos  int
	file *File
}

func (p *parser) peek() token { return p.peekAt(0) }

func (p *parser) peekAt(n int) token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

// skipBalanced consumes from an opening token to its matching close.
// It reports false if the input ended first.
func (p *parser) skipBalanced(open, close string) bool {
	depth := 0
	for !p.atEOF() {
		t := p.next()
		switch {
		case t.punct(open):
			depth++
		case t.punct(close):
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// skipStatement consumes up to and including the next ';' outside of any
// brackets. A '}' closing an enclosing block stops it without being consumed.
func (p *parser) skipStatement() bool {
	depth := 0
	for !p.atEOF() {
		t := p.peek()
		switch {
		case t.punct("(") || t.punct("[") || t.punct("{"):
			depth++
		case t.punct(")") || t.punct("]"):
			depth--
		case t.punct("}"):
			if depth == 0 {
				return false
			}
			depth--
		case t.punct(";") && depth <= 0:
			p.next()
			return true
		}
		p.next()
	}
	return false
}

var modifiers = map[string]struct{}{
	"public": {}, "private": {}, "protected": {}, "internal": {}, "static": {},
	"partial": {}, "sealed": {}, "abstract": {}, "unsafe": {}, "new": {},
	"readonly": {}, "ref": {}, "file": {}, "extern": {}, "virtual": {},
	"override": {}, "async": {}, "volatile": {}, "const": {}, "required": {},
}

func isModifier(t token) bool {
	if t.kind != tokIdent || t.verbatim {
		return false
	}
	_, ok := modifiers[t.text]
	return ok
}

// isTypeKeyword reports whether the parser is positioned at a nested or
// top-level type declaration.
func (p *parser) isTypeKeyword() bool {
	t := p.peek()
	if t.kind != tokIdent || t.verbatim {
		return false
	}
	switch t.text {
	case "class", "struct", "interface", "enum":
		return true
	case "record":
		n := p.peekAt(1)
		if n.keyword("class") || n.keyword("struct") {
			return true
		}
		if n.kind != tokIdent {
			return false
		}
		after := p.peekAt(2)
		return !(after.punct("{") || after.punct("=>") || after.punct(";") || after.punct("="))
	}
	return false
}

func (p *parser) namespaceBody(sc *scope, braced bool) {
	var pending []attrSection
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return
		case t.punct("}"):
			p.next()
			if braced {
				return
			}
		case t.keyword("global") && p.peekAt(1).keyword("using"):
			p.next()
			p.using(sc, true)
		case t.keyword("using"):
			p.using(sc, false)
		case t.keyword("extern") && p.peekAt(1).keyword("alias"):
			p.skipStatement()
		case t.keyword("namespace"):
			p.next()
			name := p.qualifiedName()
			child := &scope{parent: sc, ns: joinName(sc.ns, name)}
			pending = nil
			switch {
			case p.peek().punct(";"):
				p.next()
				sc = child
			case p.peek().punct("{"):
				p.next()
				p.namespaceBody(child, true)
			}
		case t.punct("["):
			sec := p.attributeSection()
			if sec.target != "assembly" && sec.target != "module" {
				pending = append(pending, sec)
			}
		case t.keyword("delegate"):
			p.skipStatement()
			pending = nil
		case p.isTypeKeyword():
			p.typeDecl(sc, nil, pending, nil)
			pending = nil
		case isModifier(t):
			p.next()
		default:
			// top-level statements and anything unrecognised
			p.next()
			pending = nil
		}
	}
}

func (p *parser) using(sc *scope, global bool) {
	p.next()
	switch {
	case p.peek().keyword("static"), p.peek().punct("("):
		p.skipStatement()
		return
	}

	if p.peek().kind == tokIdent && p.peekAt(1).punct("=") {
		alias := p.next().text
		p.next()
		target := p.qualifiedName()
		p.skipStatement()
		if target == "" {
			return
		}
		if global {
			if p.file.globalAliases == nil {
				p.file.globalAliases = make(map[string]string)
			}
			p.file.globalAliases[alias] = target
			return
		}
		sc.addAlias(alias, target)
		return
	}

	ns := p.qualifiedName()
	p.skipStatement()
	if ns == "" {
		return
	}
	if global {
		p.file.globalUsings = append(p.file.globalUsings, ns)
		return
	}
	sc.usings = append(sc.usings, ns)
}

// qualifiedName reads `[global::]A.B.C` and skips generic argument lists.
func (p *parser) qualifiedName() string {
	if p.peek().keyword("global") && p.peekAt(1).punct("::") {
		p.next()
		p.next()
	}
	var parts []string
	for p.peek().kind == tokIdent {
		parts = append(parts, p.next().text)
		if p.peek().punct("<") {
			p.skipBalanced("<", ">")
		}
		if !p.peek().punct(".") {
			break
		}
		p.next()
	}
	return strings.Join(parts, ".")
}

func (p *parser) attributeSection() attrSection {
	p.next()
	var sec attrSection
	if p.peek().kind == tokIdent && p.peekAt(1).punct(":") {
		sec.target = p.next().text
		p.next()
	}

	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			sec.err = fmt.Errorf("%w: unterminated attribute section at line %d", ErrMalformed, t.line)
			return sec
		case t.punct("]"):
			p.next()
			return sec
		case t.punct(","):
			p.next()
			continue
		}

		ref, ok := p.attributeName()
		if !ok {
			sec.err = fmt.Errorf("%w: unexpected %s %q in attribute section at line %d", ErrMalformed, t.kind, t.text, t.line)
			p.recoverSection()
			return sec
		}
		sec.attrs = append(sec.attrs, ref)
		if p.peek().punct("(") {
			if !p.skipBalanced("(", ")") {
				sec.err = fmt.Errorf("%w: unterminated attribute arguments", ErrMalformed)
				return sec
			}
		}
	}
}

// recoverSection skips to the ']' closing the current attribute section.
func (p *parser) recoverSection() {
	depth := 0
	for !p.atEOF() {
		t := p.next()
		switch {
		case t.punct("[") || t.punct("("):
			depth++
		case t.punct(")"):
			depth--
		case t.punct("]"):
			if depth == 0 {
				return
			}
			depth--
		}
	}
}

func (p *parser) attributeName() (attrRef, bool) {
	var ref attrRef
	if p.peek().kind == tokIdent && p.peekAt(1).punct("::") {
		// global:: or an extern alias
		ref.global = p.peek().keyword("global")
		p.next()
		p.next()
	}
	if p.peek().kind != tokIdent {
		return ref, false
	}
	var parts []string
	for p.peek().kind == tokIdent {
		parts = append(parts, p.next().text)
		if p.peek().punct("<") {
			p.skipBalanced("<", ">")
		}
		if !p.peek().punct(".") {
			break
		}
		p.next()
	}
	ref.name = strings.Join(parts, ".")
	return ref, true
}

// typeDecl reads a type declaration starting at its keyword. Only classes
// are recorded; other type bodies are walked for nested classes.
func (p *parser) typeDecl(sc *scope, containing []string, sections []attrSection, parentErr error) {
	kw := p.next()
	isClass := kw.keyword("class")
	if kw.keyword("record") && (p.peek().keyword("class") || p.peek().keyword("struct")) {
		p.next()
	}

	decl := &classDecl{
		file:       p.file,
		scope:      sc,
		containing: containing,
		line:       kw.line,
		sections:   sections,
		err:        parentErr,
	}

	nameTok := p.peek()
	if nameTok.kind == tokIdent && (nameTok.verbatim || !common.IsKeyword(nameTok.text)) {
		p.next()
		decl.name = nameTok.text
	} else if decl.err == nil {
		decl.err = fmt.Errorf("%w: %s without a name at line %d", ErrMalformed, kw.text, kw.line)
	}

	if p.peek().punct("<") {
		decl.arity = p.typeParameters()
	}

	if isClass {
		p.file.classes = append(p.file.classes, decl)
	}

	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			if decl.err == nil {
				decl.err = fmt.Errorf("%w: %s %s has no body", ErrMalformed, kw.text, decl.name)
			}
			return
		case t.punct(";"):
			p.next()
			return
		case t.punct("("):
			p.skipBalanced("(", ")")
			continue
		case t.punct("{"):
			if kw.keyword("enum") {
				if !p.skipBalanced("{", "}") && decl.err == nil {
					decl.err = fmt.Errorf("%w: unterminated enum %s", ErrMalformed, decl.name)
				}
				return
			}
			p.next()
			var owner *classDecl
			if isClass {
				owner = decl
			}
			nested := append(append([]string(nil), containing...), decl.name)
			if !p.typeBody(sc, nested, owner, decl.err) && decl.err == nil {
				decl.err = fmt.Errorf("%w: unterminated body of %s %s", ErrMalformed, kw.text, decl.name)
			}
			return
		}
		p.next()
	}
}

// typeParameters skips `<T, U>` and returns the arity.
func (p *parser) typeParameters() int {
	arity := 1
	depth := 0
	for !p.atEOF() {
		t := p.next()
		switch {
		case t.punct("<"):
			depth++
		case t.punct(">"):
			depth--
			if depth == 0 {
				return arity
			}
		case t.punct(",") && depth == 1:
			arity++
		}
	}
	return arity
}

// typeBody reads members up to the closing brace. It reports whether the
// brace was found.
func (p *parser) typeBody(sc *scope, containing []string, owner *classDecl, parentErr error) bool {
	var pending []attrSection
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return false
		case t.punct("}"):
			p.next()
			return true
		case t.punct("["):
			pending = append(pending, p.attributeSection())
			continue
		case isModifier(t):
			p.next()
			continue
		case t.keyword("delegate"):
			p.skipStatement()
		case p.isTypeKeyword():
			p.typeDecl(sc, containing, pending, parentErr)
		case t.punct(";"):
			p.next()
		default:
			if name, ok := p.member(); ok && owner != nil {
				owner.props = append(owner.props, name)
			}
		}
		pending = nil
	}
}

// member reads one non-type member and reports the property name if the
// member is a property.
func (p *parser) member() (string, bool) {
	var prev, prevPrev token
	callable := false // method, constructor, operator, indexer or event

	advance := func(t token) {
		prevPrev, prev = prev, t
	}

	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return "", false
		case t.punct("}"):
			// missing terminator; leave the brace to the body
			return "", false
		case t.punct("("):
			if prev.punct(">") || (prev.kind == tokIdent && !isModifier(prev) && !common.IsKeyword(prev.text)) || prev.verbatim {
				callable = true
			}
			p.skipBalanced("(", ")")
			advance(token{kind: tokPunct, text: ")"})
			continue
		case t.punct("["):
			if prev.keyword("this") {
				callable = true
			}
			p.skipBalanced("[", "]")
			advance(token{kind: tokPunct, text: "]"})
			continue
		case t.keyword("event") || t.keyword("operator"):
			callable = true
		case t.punct("{"):
			p.skipBalanced("{", "}")
			if callable {
				return "", false
			}
			if p.peek().punct("=") {
				p.skipStatement()
			}
			return propertyName(prev, prevPrev)
		case t.punct("=>"):
			p.next()
			p.skipStatement()
			if callable {
				return "", false
			}
			return propertyName(prev, prevPrev)
		case t.punct("="), t.punct(";"):
			p.skipStatement()
			return "", false
		}
		advance(t)
		p.next()
	}
}

func propertyName(name, before token) (string, bool) {
	if name.kind != tokIdent || before.punct(".") {
		return "", false
	}
	if !name.verbatim && common.IsKeyword(name.text) {
		return "", false
	}
	return name.text, true
}

func joinName(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}
