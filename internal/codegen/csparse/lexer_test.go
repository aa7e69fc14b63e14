package csparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.kind)
	}
	return out
}

func TestTokenize(t *testing.T) {
	src := "\xEF\xBB\xBF" + `#region Header
// line comment
/* block
   comment */
global::A.@class x => 1.5f;
#endregion
`
	toks, err := tokenize([]byte(src))
	require.NoError(t, err)

	require.Len(t, toks, 10)
	assert.True(t, toks[0].keyword("global"))
	assert.True(t, toks[1].punct("::"))
	assert.Equal(t, "class", toks[4].text)
	assert.True(t, toks[4].verbatim)
	assert.False(t, toks[4].keyword("class"))
	assert.True(t, toks[6].punct("=>"))
	assert.Equal(t, tokNumber, toks[7].kind)
	assert.Equal(t, "1.5f", toks[7].text)
	assert.Equal(t, 5, toks[0].line)
	assert.Equal(t, tokEOF, toks[9].kind)
}

func TestTokenizeStringLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tokenKind
	}{
		{name: "regular", src: `"a\"b" x`, want: []tokenKind{tokString, tokIdent, tokEOF}},
		{name: "verbatim", src: `@"a""b" x`, want: []tokenKind{tokString, tokIdent, tokEOF}},
		{name: "interpolated", src: `$"{x} {{y}} {"nested"}" x`, want: []tokenKind{tokString, tokIdent, tokEOF}},
		{name: "verbatim interpolated", src: `$@"{x}""" x`, want: []tokenKind{tokString, tokIdent, tokEOF}},
		{name: "raw", src: `"""raw " and "" quotes""" x`, want: []tokenKind{tokString, tokIdent, tokEOF}},
		{name: "interpolated raw", src: `$"""{x}""" x`, want: []tokenKind{tokString, tokIdent, tokEOF}},
		{name: "char", src: `'\'' '"' x`, want: []tokenKind{tokChar, tokChar, tokIdent, tokEOF}},
		{name: "braces in strings", src: `"{" '}' }`, want: []tokenKind{tokString, tokChar, tokPunct, tokEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := tokenize([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(toks))
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []string{
		`"unterminated`,
		"\"newline\n\"",
		`/* open`,
		`'x`,
		`$"{open"`,
	}
	for _, src := range tests {
		toks, err := tokenize([]byte(src))
		assert.Error(t, err, src)
		assert.Equal(t, tokEOF, toks[len(toks)-1].kind)
	}
}

func TestTokenizeIndentedDirective(t *testing.T) {
	toks, err := tokenize([]byte("  #if DEBUG\nx"))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "x", toks[0].text)
	assert.Equal(t, 2, toks[0].line)
}
