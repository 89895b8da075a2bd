package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/token"
)

// run applies the named rules to src with the given options.
func run(t *testing.T, src string, rules []string, adjust func(*format.Options)) string {
	t.Helper()
	opts := format.DefaultOptions()
	if adjust != nil {
		adjust(&opts)
	}
	out, err := format.Source(src, rules, opts)
	require.NoError(t, err)
	return out
}

func TestLinebreaksRule(t *testing.T) {
	t.Parallel()

	got := run(t, "a\r\nb\rc\n", []string{"linebreaks"}, nil)
	assert.Equal(t, "a\nb\nc\n", got)

	crlf := func(o *format.Options) { o.Linebreak = "\r\n" }
	got = run(t, "a\nb\n", []string{"linebreaks"}, crlf)
	assert.Equal(t, "a\r\nb\r\n", got)
}

func TestSemicolonsRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		adjust func(*format.Options)
	}{
		{name: "end of line", input: "let x = 1;\n", want: "let x = 1\n"},
		{name: "end of file", input: "let x = 1;", want: "let x = 1"},
		{name: "before closing brace", input: "{ foo(); }\n", want: "{ foo() }\n"},
		{name: "after return", input: "return;\n", want: "return;\n"},
		{name: "inside parens", input: "for (;;) {}\n", want: "for (;;) {}\n"},
		{name: "inline kept by default", input: "foo(); bar()\n", want: "foo(); bar()\n"},
		{
			name:   "inline replaced when disallowed",
			input:  "foo(); bar()\n",
			want:   "foo()\nbar()\n",
			adjust: func(o *format.Options) { o.AllowInlineSemicolons = false },
		},
		{
			name:   "replacement reproduces indent",
			input:  "    foo(); bar()\n",
			want:   "    foo()\n    bar()\n",
			adjust: func(o *format.Options) { o.AllowInlineSemicolons = false },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, run(t, tt.input, []string{"semicolons"}, tt.adjust))
		})
	}
}

func TestSpecifiersRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"override public final func f() {}\n", "public final override func f() {}\n"},
		{"static private let x = 1\n", "private static let x = 1\n"},
		{"lazy weak public var d: Delegate?\n", "public lazy weak var d: Delegate?\n"},
		{"public private(set) var x = 1\n", "private(set) public var x = 1\n"},
		{"public func f() {}\n", "public func f() {}\n"},
		{"func f() {}\n", "func f() {}\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, run(t, tt.input, []string{"specifiers"}, nil), "input %q", tt.input)
	}
}

func TestRedundantParensRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"if (x) {}\n", "if x {}\n"},
		{"if(x) {}\n", "if x {}\n"},
		{"while (x > 0) {}\n", "while x > 0 {}\n"},
		{"switch (x) {}\n", "switch x {}\n"},
		{"switch (a, b) {}\n", "switch (a, b) {}\n"},
		{"if (x) == y {}\n", "if (x) == y {}\n"},
		{"foo(x)\n", "foo(x)\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, run(t, tt.input, []string{"redundantParens"}, nil), "input %q", tt.input)
	}
}

func TestVoidRule(t *testing.T) {
	t.Parallel()

	noVoid := func(o *format.Options) { o.UseVoid = false }

	tests := []struct {
		name   string
		input  string
		want   string
		adjust func(*format.Options)
	}{
		{name: "return tuple becomes Void", input: "func f() -> ()\n", want: "func f() -> Void\n"},
		{name: "parenthesized Void argument", input: "func f(_ c: (Void) -> Void)\n", want: "func f(_ c: () -> Void)\n"},
		{name: "returned function type untouched", input: "func f() -> () -> Int\n", want: "func f() -> () -> Int\n"},
		{name: "non-return tuple untouched", input: "let x: Void = ()\n", want: "let x: Void = ()\n"},
		{name: "Void after dot untouched", input: "let t = Swift.Void.self\n", want: "let t = Swift.Void.self\n"},
		{name: "Void becomes tuple when disabled", input: "func f() -> Void\n", want: "func f() -> ()\n", adjust: noVoid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, run(t, tt.input, []string{"void"}, tt.adjust))
		})
	}
}

func TestBracesRule(t *testing.T) {
	t.Parallel()

	allman := func(o *format.Options) { o.AllmanBraces = true }

	t.Run("knr pulls brace up", func(t *testing.T) {
		t.Parallel()
		got := run(t, "if x\n{\n    foo()\n}\n", []string{"braces"}, nil)
		assert.Equal(t, "if x {\n    foo()\n}\n", got)
	})

	t.Run("knr leaves comment-guarded brace", func(t *testing.T) {
		t.Parallel()
		input := "if x // comment\n{\n    foo()\n}\n"
		assert.Equal(t, input, run(t, input, []string{"braces"}, nil))
	})

	t.Run("single-line block untouched", func(t *testing.T) {
		t.Parallel()
		input := "let f = { x in x }\n"
		assert.Equal(t, input, run(t, input, []string{"braces"}, nil))
	})

	t.Run("allman pushes brace down", func(t *testing.T) {
		t.Parallel()
		got := run(t, "if x {\n    foo()\n}\n", []string{"braces"}, allman)
		assert.Equal(t, "if x\n{\n    foo()\n}\n", got)
	})

	t.Run("allman preserves line indent", func(t *testing.T) {
		t.Parallel()
		got := run(t, "    if x {\n        foo()\n    }\n", []string{"braces"}, allman)
		assert.Equal(t, "    if x\n    {\n        foo()\n    }\n", got)
	})
}

func TestElseOnSameLineRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		adjust func(*format.Options)
	}{
		{
			name:  "else joins the closing brace",
			input: "if x {\n    foo()\n}\nelse {\n    bar()\n}\n",
			want:  "if x {\n    foo()\n} else {\n    bar()\n}\n",
		},
		{
			name:  "catch joins the closing brace",
			input: "do {\n    try foo()\n}\ncatch {\n    bar()\n}\n",
			want:  "do {\n    try foo()\n} catch {\n    bar()\n}\n",
		},
		{
			name:  "while joins a repeat body",
			input: "repeat {\n    foo()\n}\nwhile x\n",
			want:  "repeat {\n    foo()\n} while x\n",
		},
		{
			name:  "free-standing while untouched",
			input: "if x {\n    foo()\n}\nwhile y {}\n",
			want:  "if x {\n    foo()\n}\nwhile y {}\n",
		},
		{
			name:  "guard else untouched",
			input: "guard x\nelse { return }\n",
			want:  "guard x\nelse { return }\n",
		},
		{
			name:   "allman splits else onto its own line",
			input:  "if x\n{\n    foo()\n} else\n{\n    bar()\n}\n",
			want:   "if x\n{\n    foo()\n}\nelse\n{\n    bar()\n}\n",
			adjust: func(o *format.Options) { o.AllmanBraces = true },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, run(t, tt.input, []string{"elseOnSameLine"}, tt.adjust))
		})
	}
}

func TestRangesRule(t *testing.T) {
	t.Parallel()

	noSpaces := func(o *format.Options) { o.SpaceAroundRangeOperators = false }

	tests := []struct {
		name   string
		input  string
		want   string
		adjust func(*format.Options)
	}{
		{name: "half-open range gains spaces", input: "let r = 0..<10\n", want: "let r = 0 ..< 10\n"},
		{name: "closed range gains spaces", input: "let r = 0...10\n", want: "let r = 0 ... 10\n"},
		{name: "argument default untouched", input: "foo(bar: 1...)\n", want: "foo(bar: 1...)\n"},
		{name: "spaces stripped when disabled", input: "let r = 0 ..< 10\n", want: "let r = 0..<10\n", adjust: noSpaces},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, run(t, tt.input, []string{"ranges"}, tt.adjust))
		})
	}
}

func TestTrailingCommasRule(t *testing.T) {
	t.Parallel()

	noCommas := func(o *format.Options) { o.TrailingCommas = false }

	tests := []struct {
		name   string
		input  string
		want   string
		adjust func(*format.Options)
	}{
		{name: "comma added on multi-line literal", input: "let x = [\n    1,\n    2\n]\n", want: "let x = [\n    1,\n    2,\n]\n"},
		{name: "single-line literal untouched", input: "let x = [1, 2]\n", want: "let x = [1, 2]\n"},
		{name: "empty literal untouched", input: "let x = [\n]\n", want: "let x = [\n]\n"},
		{name: "comma removed when disabled", input: "let x = [\n    1,\n    2,\n]\n", want: "let x = [\n    1,\n    2\n]\n", adjust: noCommas},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, run(t, tt.input, []string{"trailingCommas"}, tt.adjust))
		})
	}
}

func TestSpaceAroundOperatorsRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"a+b\n", "a + b\n"},
		{"a ? b:c\n", "a ? b : c\n"},
		{"x?.y\n", "x?.y\n"},
		{"foo(bar:baz)\n", "foo(bar: baz)\n"},
		{"foo(bar:baz:)\n", "foo(bar:baz:)\n"},
		{"a , b\n", "a, b\n"},
		{"func f()->Int\n", "func f() -> Int\n"},
		{"a ??.foo\n", "a ?? .foo\n"},
		{"return .foo\n", "return .foo\n"},
		{"try?foo()\n", "try? foo()\n"},
		{"x . y\n", "x.y\n"},
		{"let d = [a:1]\n", "let d = [a: 1]\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, run(t, tt.input, []string{"spaceAroundOperators"}, nil), "input %q", tt.input)
	}
}

func TestSpacingRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rules []string
		input string
		want  string
	}{
		{"keyword gains space before paren", []string{"spaceAroundParens"}, "if(x) {}\n", "if (x) {}\n"},
		{"identifier loses space before paren", []string{"spaceAroundParens"}, "foo (bar)\n", "foo(bar)\n"},
		{"init loses space before paren", []string{"spaceAroundParens"}, "init (x)\n", "init(x)\n"},
		{"capture list gains space before params", []string{"spaceAroundParens"}, "let c = { [weak self](a) in a }\n", "let c = { [weak self] (a) in a }\n"},
		{"closing paren gains space before brace", []string{"spaceAroundParens"}, "foo(){}\n", "foo() {}\n"},
		{"padding inside parens removed", []string{"spaceInsideParens"}, "foo( a, b )\n", "foo(a, b)\n"},
		{"identifier loses space before subscript", []string{"spaceAroundBrackets"}, "let a = x [0]\n", "let a = x[0]\n"},
		{"keyword keeps space before literal", []string{"spaceAroundBrackets"}, "return[1]\n", "return [1]\n"},
		{"padding inside brackets removed", []string{"spaceInsideBrackets"}, "let a = [ 1, 2 ]\n", "let a = [1, 2]\n"},
		{"brace gains space after identifier", []string{"spaceAroundBraces"}, "let c = foo{ bar }\n", "let c = foo { bar }\n"},
		{"brace gains space before keyword", []string{"spaceAroundBraces"}, "do {}catch {}\n", "do {} catch {}\n"},
		{"inline braces padded", []string{"spaceInsideBraces"}, "let c = {bar}\n", "let c = { bar }\n"},
		{"empty braces collapse", []string{"spaceInsideBraces"}, "let c = { }\n", "let c = {}\n"},
		{"padding inside generics removed", []string{"spaceInsideGenerics"}, "let x: Foo< Int >\n", "let x: Foo<Int>\n"},
		{"comment gains space after code", []string{"spaceAroundComments"}, "foo()// c\n", "foo() // c\n"},
		{"block comment gains space before code", []string{"spaceAroundComments"}, "/* c */foo()\n", "/* c */ foo()\n"},
		{"line comment body padded", []string{"spaceInsideComments"}, "//comment\n", "// comment\n"},
		{"block comment body padded", []string{"spaceInsideComments"}, "/*comment*/\n", "/* comment */\n"},
		{"doc comment untouched", []string{"spaceInsideComments"}, "///doc\n", "///doc\n"},
		{"runs of spaces collapse", []string{"consecutiveSpaces"}, "a  +   b\n", "a + b\n"},
		{"comment spacing preserved", []string{"consecutiveSpaces"}, "// a  table\n", "// a  table\n"},
		{"leading indent preserved", []string{"consecutiveSpaces"}, "    foo()\n", "    foo()\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, run(t, tt.input, tt.rules, nil))
		})
	}
}

func TestSpaceAroundGenericsRule(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		token.Identifier("Foo"),
		token.Whitespace(" "),
		token.StartOfScope("<"),
		token.Identifier("T"),
		token.EndOfScope(">"),
	}
	rules, err := format.DefaultRegistry.Select([]string{"spaceAroundGenerics"})
	require.NoError(t, err)
	out, err := format.Apply(tokens, rules, format.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []token.Token{
		token.Identifier("Foo"),
		token.StartOfScope("<"),
		token.Identifier("T"),
		token.EndOfScope(">"),
	}, out)
}

func TestTodosRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"// TODO:something\n", "// TODO: something\n"},
		{"// TODO  fix this\n", "// TODO: fix this\n"},
		{"// MARK - section\n", "// MARK: - section\n"},
		{"// FIXME: already fine\n", "// FIXME: already fine\n"},
		{"// TODOLIST\n", "// TODOLIST\n"},
		{"// TODO\n", "// TODO:\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, run(t, tt.input, []string{"todos"}, nil), "input %q", tt.input)
	}
}

func TestVerticalWhitespaceRules(t *testing.T) {
	t.Parallel()

	t.Run("blank line before closing brace removed", func(t *testing.T) {
		t.Parallel()
		got := run(t, "func f() {\n    foo()\n\n}\n", []string{"blankLinesAtEndOfScope"}, nil)
		assert.Equal(t, "func f() {\n    foo()\n}\n", got)
	})

	t.Run("blank line inserted after type body", func(t *testing.T) {
		t.Parallel()
		got := run(t, "class A {\n}\nlet x = 1\n", []string{"blankLinesBetweenScopes"}, nil)
		assert.Equal(t, "class A {\n}\n\nlet x = 1\n", got)
	})

	t.Run("func body is not spaceable", func(t *testing.T) {
		t.Parallel()
		input := "func f() {\n}\nlet x = 1\n"
		assert.Equal(t, input, run(t, input, []string{"blankLinesBetweenScopes"}, nil))
	})

	t.Run("repeat while gets no blank line", func(t *testing.T) {
		t.Parallel()
		input := "repeat {\n    foo()\n} while x\n"
		assert.Equal(t, input, run(t, input, []string{"blankLinesBetweenScopes"}, nil))
	})

	t.Run("extension followed by extension", func(t *testing.T) {
		t.Parallel()
		got := run(t, "extension A {\n}\nextension B {\n}\n", []string{"blankLinesBetweenScopes"}, nil)
		assert.Equal(t, "extension A {\n}\n\nextension B {\n}\n", got)
	})

	t.Run("consecutive blank lines collapse", func(t *testing.T) {
		t.Parallel()
		got := run(t, "a\n\n\n\nb\n", []string{"consecutiveBlankLines"}, nil)
		assert.Equal(t, "a\n\nb\n", got)
	})

	t.Run("trailing blank line collapses at end of file", func(t *testing.T) {
		t.Parallel()
		got := run(t, "a\n\n", []string{"consecutiveBlankLines"}, nil)
		assert.Equal(t, "a\n", got)
	})

	t.Run("fragment keeps trailing blank line", func(t *testing.T) {
		t.Parallel()
		fragment := func(o *format.Options) { o.Fragment = true }
		got := run(t, "a\n\n", []string{"consecutiveBlankLines"}, fragment)
		assert.Equal(t, "a\n\n", got)
	})

	t.Run("trailing whitespace removed", func(t *testing.T) {
		t.Parallel()
		got := run(t, "a   \nb\t\n", []string{"trailingWhitespace"}, nil)
		assert.Equal(t, "a\nb\n", got)
	})

	t.Run("linebreak appended at end of file", func(t *testing.T) {
		t.Parallel()
		got := run(t, "let x = 1", []string{"linebreakAtEndOfFile"}, nil)
		assert.Equal(t, "let x = 1\n", got)
	})

	t.Run("fragment gets no final linebreak", func(t *testing.T) {
		t.Parallel()
		fragment := func(o *format.Options) { o.Fragment = true }
		got := run(t, "let x = 1", []string{"linebreakAtEndOfFile"}, fragment)
		assert.Equal(t, "let x = 1", got)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", run(t, "", nil, nil))
	})
}

func TestStripHeaderRule(t *testing.T) {
	t.Parallel()

	strip := func(o *format.Options) { o.StripHeader = true }

	t.Run("line comment header removed", func(t *testing.T) {
		t.Parallel()
		got := run(t, "// Created by X\n// Copyright Y\n\nlet x = 1\n", []string{"stripHeader"}, strip)
		assert.Equal(t, "let x = 1\n", got)
	})

	t.Run("block comment header kept", func(t *testing.T) {
		t.Parallel()
		input := "/* Copyright */\nlet x = 1\n"
		assert.Equal(t, input, run(t, input, []string{"stripHeader"}, strip))
	})

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()
		input := "// header\nlet x = 1\n"
		assert.Equal(t, input, run(t, input, []string{"stripHeader"}, nil))
	})

	t.Run("fragment keeps header", func(t *testing.T) {
		t.Parallel()
		input := "// header\nlet x = 1\n"
		got := run(t, input, []string{"stripHeader"}, func(o *format.Options) {
			o.StripHeader = true
			o.Fragment = true
		})
		assert.Equal(t, input, got)
	})
}
