package csparse

import (
	"fmt"
	"unicode/utf8"

	"github.com/Alia5/resxext/internal/codegen/common"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokPunct
	tokString
	tokChar
	tokNumber
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokIdent:
		return "identifier"
	case tokPunct:
		return "punctuation"
	case tokString:
		return "string"
	case tokChar:
		return "char"
	case tokNumber:
		return "number"
	default:
		return "unknown"
	}
}

type token struct {
	kind tokenKind
	text string // identifiers are stored without the '@' prefix
	// verbatim is set for '@'-prefixed identifiers, which are never keywords.
	verbatim bool
	line     int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) punct(text string) bool { return t.is(tokPunct, text) }

// keyword reports whether t is the contextual or reserved keyword kw.
func (t token) keyword(kw string) bool {
	return t.kind == tokIdent && !t.verbatim && t.text == kw
}

type lexer struct {
	src    []byte
	pos    int
	line   int
	tokens []token
	err    error
}

// tokenize splits src into tokens. Comments, whitespace and preprocessor
// directives are dropped. On a lexical error the tokens read so far are
// returned together with the error.
func tokenize(src []byte) ([]token, error) {
	l := &lexer{src: src, line: 1}
	l.skipBOM()
	l.run()
	l.tokens = append(l.tokens, token{kind: tokEOF, line: l.line})
	return l.tokens, l.err
}

func (l *lexer) skipBOM() {
	if len(l.src) >= 3 && l.src[0] == 0xEF && l.src[1] == 0xBB && l.src[2] == 0xBF {
		l.pos = 3
	}
}

func (l *lexer) peekByte(off int) byte {
	if i := l.pos + off; i >= 0 && i < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) fail(format string, args ...any) {
	if l.err == nil {
		l.err = fmt.Errorf("line %d: "+format, append([]any{l.line}, args...)...)
	}
	l.pos = len(l.src)
}

func (l *lexer) emit(kind tokenKind, text string, line int) {
	l.tokens = append(l.tokens, token{kind: kind, text: text, line: line})
}

func (l *lexer) run() {
	atLineStart := true
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
			atLineStart = true
			continue
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
			continue
		case c == '#' && atLineStart:
			l.skipLine()
			continue
		case c == '/' && l.peekByte(1) == '/':
			l.skipLine()
			continue
		case c == '/' && l.peekByte(1) == '*':
			l.skipBlockComment()
			continue
		}

		atLineStart = false
		switch {
		case c == '"':
			if l.peekByte(1) == '"' && l.peekByte(2) == '"' {
				l.rawString()
			} else {
				l.regularString(l.pos + 1)
			}
		case c == '\'':
			l.charLiteral()
		case c == '@' && l.peekByte(1) == '"':
			l.verbatimString(l.pos + 2)
		case c == '$' || (c == '@' && l.peekByte(1) == '$'):
			l.interpolatedOrPunct()
		case c == '@':
			l.pos++
			start := len(l.tokens)
			if !l.identifier() {
				l.fail("unexpected '@'")
				return
			}
			l.tokens[start].verbatim = true
		case c >= '0' && c <= '9':
			l.number()
		case c == '.' && l.peekByte(1) >= '0' && l.peekByte(1) <= '9':
			l.number()
		default:
			if l.identifier() {
				continue
			}
			l.punctuation()
		}
	}
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) skipBlockComment() {
	l.pos += 2
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peekByte(1) == '/' {
			l.pos += 2
			return
		}
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	l.fail("unterminated block comment")
}

func (l *lexer) identifier() bool {
	r, size := utf8.DecodeRune(l.src[l.pos:])
	if !common.IsIdentifierStart(r) {
		return false
	}
	start := l.pos
	l.pos += size
	for l.pos < len(l.src) {
		r, size = utf8.DecodeRune(l.src[l.pos:])
		if !common.IsIdentifierPart(r) {
			break
		}
		l.pos += size
	}
	l.emit(tokIdent, string(l.src[start:l.pos]), l.line)
	return true
}

func (l *lexer) number() {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '.' {
			// member access on a literal, e.g. 1.ToString()
			if c == '.' && !(l.peekByte(1) >= '0' && l.peekByte(1) <= '9') {
				break
			}
			l.pos++
			continue
		}
		break
	}
	l.emit(tokNumber, string(l.src[start:l.pos]), l.line)
}

var punctuators = []string{
	"??=", ">>=", "<<=", "...",
	"::", "=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "->", "..",
}

func (l *lexer) punctuation() {
	for _, p := range punctuators {
		if len(l.src)-l.pos >= len(p) && string(l.src[l.pos:l.pos+len(p)]) == p {
			l.emit(tokPunct, p, l.line)
			l.pos += len(p)
			return
		}
	}
	r, size := utf8.DecodeRune(l.src[l.pos:])
	l.emit(tokPunct, string(r), l.line)
	l.pos += size
}

// regularString scans a "..." literal whose body starts at from.
func (l *lexer) regularString(from int) {
	line := l.line
	l.pos = from
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '"':
			l.pos++
			l.emit(tokString, "", line)
			return
		case '\n':
			l.fail("newline in string literal")
			return
		}
		l.pos++
	}
	l.fail("unterminated string literal")
}

// verbatimString scans a @"..." literal whose body starts at from.
func (l *lexer) verbatimString(from int) {
	line := l.line
	l.pos = from
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '"':
			if l.peekByte(1) == '"' {
				l.pos += 2
				continue
			}
			l.pos++
			l.emit(tokString, "", line)
			return
		case '\n':
			l.line++
		}
		l.pos++
	}
	l.fail("unterminated verbatim string literal")
}

// rawString scans a """...""" literal, interpolated or not.
func (l *lexer) rawString() {
	line := l.line
	quotes := 0
	for l.pos < len(l.src) && l.src[l.pos] == '"' {
		quotes++
		l.pos++
	}
	for l.pos < len(l.src) {
		if l.src[l.pos] == '"' {
			n := 0
			for l.pos+n < len(l.src) && l.src[l.pos+n] == '"' {
				n++
			}
			if n >= quotes {
				l.pos += n
				l.emit(tokString, "", line)
				return
			}
			l.pos += n
			continue
		}
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	l.fail("unterminated raw string literal")
}

func (l *lexer) charLiteral() {
	line := l.line
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '\'':
			l.pos++
			l.emit(tokChar, "", line)
			return
		case '\n':
			l.fail("newline in character literal")
			return
		}
		l.pos++
	}
	l.fail("unterminated character literal")
}

// interpolatedOrPunct handles $"...", $@"...", @$"..." and $"""...""".
// A '$' not followed by a string is emitted as punctuation.
func (l *lexer) interpolatedOrPunct() {
	verbatim := false
	dollars := 0
	p := l.pos
	for p < len(l.src) && (l.src[p] == '$' || l.src[p] == '@') {
		if l.src[p] == '@' {
			verbatim = true
		} else {
			dollars++
		}
		p++
	}
	if p >= len(l.src) || l.src[p] != '"' || dollars == 0 {
		l.punctuation()
		return
	}
	l.pos = p
	if !verbatim && l.peekByte(1) == '"' && l.peekByte(2) == '"' {
		l.rawString()
		return
	}
	l.interpolated(verbatim)
}

// interpolated scans an interpolated string starting at its opening quote.
// Holes may contain nested strings and braces.
func (l *lexer) interpolated(verbatim bool) {
	line := l.line
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\' && !verbatim:
			l.pos += 2
			continue
		case c == '"':
			if verbatim && l.peekByte(1) == '"' {
				l.pos += 2
				continue
			}
			l.pos++
			l.emit(tokString, "", line)
			return
		case c == '{':
			if l.peekByte(1) == '{' {
				l.pos += 2
				continue
			}
			l.pos++
			if !l.skipHole() {
				return
			}
			continue
		case c == '\n':
			if !verbatim {
				l.fail("newline in interpolated string")
				return
			}
			l.line++
		}
		l.pos++
	}
	l.fail("unterminated interpolated string")
}

// skipHole consumes an interpolation hole up to and including its closing
// brace.
func (l *lexer) skipHole() bool {
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				l.pos++
				return true
			}
		case '"':
			mark := len(l.tokens)
			if l.peekByte(-1) == '@' {
				l.verbatimString(l.pos + 1)
			} else {
				l.regularString(l.pos + 1)
			}
			l.tokens = l.tokens[:mark]
			if l.err != nil {
				return false
			}
			continue
		case '\'':
			mark := len(l.tokens)
			l.charLiteral()
			l.tokens = l.tokens[:mark]
			if l.err != nil {
				return false
			}
			continue
		case '\n':
			l.line++
		}
		l.pos++
	}
	l.fail("unterminated interpolation hole")
	return false
}
