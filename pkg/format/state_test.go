package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/lexer"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

func newTestFormatter(src string) *Formatter {
	return NewFormatter(lexer.Tokenize(src), DefaultOptions())
}

func TestDirectionalSearch(t *testing.T) {
	t.Parallel()

	f := newTestFormatter("let x = 1")
	// tokens: let, ws, x, ws, =, ws, 1

	next := f.NextNonWhitespace(0)
	require.GreaterOrEqual(t, next, 0)
	assert.Equal(t, "x", f.Tokens()[next].Text)

	prev := f.PreviousNonWhitespace(4)
	require.GreaterOrEqual(t, prev, 0)
	assert.Equal(t, "x", f.Tokens()[prev].Text)

	assert.Equal(t, -1, f.NextNonWhitespace(f.Len()-1))
	assert.Equal(t, -1, f.PreviousNonWhitespace(0))
}

func TestSearchSkipsCommentsAndLinebreaks(t *testing.T) {
	t.Parallel()

	f := newTestFormatter("a /* c */\nb")
	ai := f.IndexOfNext(-1, func(tok token.Token) bool { return tok.Text == "a" })
	bi := f.NextNonWhitespaceOrCommentOrLinebreak(ai)
	require.GreaterOrEqual(t, bi, 0)
	assert.Equal(t, "b", f.Tokens()[bi].Text)

	back := f.PreviousNonWhitespaceOrCommentOrLinebreak(bi)
	assert.Equal(t, ai, back)
}

func TestScopeAt(t *testing.T) {
	t.Parallel()

	t.Run("nested brackets", func(t *testing.T) {
		t.Parallel()
		f := newTestFormatter("foo(bar[baz])")
		bazIdx := f.IndexOfNext(-1, func(tok token.Token) bool { return tok.Text == "baz" })
		scope, _ := f.ScopeAt(bazIdx)
		assert.Equal(t, token.StartOfScope("["), scope)

		barIdx := f.IndexOfNext(-1, func(tok token.Token) bool { return tok.Text == "bar" })
		scope, _ = f.ScopeAt(barIdx)
		assert.Equal(t, token.StartOfScope("("), scope)
	})

	t.Run("file scope", func(t *testing.T) {
		t.Parallel()
		f := newTestFormatter("foo(bar)")
		_, idx := f.ScopeAt(0)
		assert.Equal(t, -1, idx)
	})

	t.Run("after a balanced scope", func(t *testing.T) {
		t.Parallel()
		f := newTestFormatter("foo(a) + b")
		bIdx := f.IndexOfNext(-1, func(tok token.Token) bool { return tok.Text == "b" })
		_, idx := f.ScopeAt(bIdx)
		assert.Equal(t, -1, idx)
	})

	t.Run("case pseudo scope", func(t *testing.T) {
		t.Parallel()
		f := newTestFormatter("switch x {\ncase .a:\n    foo()\n}")
		fooIdx := f.IndexOfNext(-1, func(tok token.Token) bool { return tok.Text == "foo" })
		scope, _ := f.ScopeAt(fooIdx)
		assert.Equal(t, token.EndOfScope("case"), scope)
	})

	t.Run("comment scope", func(t *testing.T) {
		t.Parallel()
		f := newTestFormatter("/* body */")
		bodyIdx := f.IndexOfNext(-1, func(tok token.Token) bool {
			return tok.Kind == token.KindCommentBody
		})
		scope, _ := f.ScopeAt(bodyIdx)
		assert.Equal(t, token.StartOfScope("/*"), scope)
	})
}

func TestEdits(t *testing.T) {
	t.Parallel()

	f := NewFormatter([]token.Token{
		token.Identifier("a"),
		token.Symbol("+"),
		token.Identifier("b"),
	}, DefaultOptions())

	f.InsertAt(1, token.Whitespace(" "))
	assert.Equal(t, "a +b", lexer.Untokenize(f.Tokens()))

	f.ReplaceAt(3, token.Identifier("c"))
	assert.Equal(t, "a +c", lexer.Untokenize(f.Tokens()))

	f.RemoveAt(1)
	assert.Equal(t, "a+c", lexer.Untokenize(f.Tokens()))

	f.ReplaceRange(0, 2, []token.Token{token.Identifier("x")})
	assert.Equal(t, "xc", lexer.Untokenize(f.Tokens()))

	f.RemoveLast()
	assert.Equal(t, "x", lexer.Untokenize(f.Tokens()))

	f.RemoveRange(0, 1)
	assert.Equal(t, 0, f.Len())

	f.RemoveLast() // no-op on empty
	assert.Equal(t, 0, f.Len())
}

func TestLineHelpers(t *testing.T) {
	t.Parallel()

	f := newTestFormatter("foo()\n    bar()")
	barIdx := f.IndexOfNext(-1, func(tok token.Token) bool { return tok.Text == "bar" })

	start := f.StartOfLine(barIdx)
	assert.True(t, f.Tokens()[start].IsWhitespace())

	indent, _, ok := f.IndentTokenForLineAt(barIdx)
	require.True(t, ok)
	assert.Equal(t, "    ", indent.Text)

	_, _, ok = f.IndentTokenForLineAt(0)
	assert.False(t, ok)
}

func TestForEachSkipsInsertedTokens(t *testing.T) {
	t.Parallel()

	f := NewFormatter([]token.Token{
		token.Symbol(","),
		token.Identifier("a"),
		token.Symbol(","),
		token.Identifier("b"),
	}, DefaultOptions())

	visits := 0
	f.ForEach(func(tok token.Token) bool { return tok.Text == "," }, func(i int, _ token.Token) {
		visits++
		f.InsertAt(i+1, token.Whitespace(" "))
	})

	assert.Equal(t, 2, visits)
	assert.Equal(t, ", a, b", lexer.Untokenize(f.Tokens()))
}

func TestForEachHandlesRemovals(t *testing.T) {
	t.Parallel()

	f := NewFormatter([]token.Token{
		token.Symbol(";"),
		token.Symbol(";"),
		token.Identifier("a"),
		token.Symbol(";"),
	}, DefaultOptions())

	f.ForEach(func(tok token.Token) bool { return tok.Text == ";" }, func(i int, _ token.Token) {
		f.RemoveAt(i)
	})

	assert.Equal(t, "a", lexer.Untokenize(f.Tokens()))
}
