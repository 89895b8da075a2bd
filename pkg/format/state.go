package format

import "github.com/yaklabco/swiftfmt/pkg/token"

// Formatter owns a mutable token sequence and the options in force while
// rules run over it. One Formatter processes one file; a Formatter is not
// safe for concurrent use, but independent files may be formatted in
// parallel by independent Formatters.
type Formatter struct {
	Options Options

	tokens []token.Token
}

// NewFormatter creates a Formatter over a copy of tokens.
func NewFormatter(tokens []token.Token, options Options) *Formatter {
	buf := make([]token.Token, len(tokens))
	copy(buf, tokens)
	return &Formatter{Options: options, tokens: buf}
}

// Tokens returns the current token sequence. The returned slice is the
// Formatter's backing store; callers must not mutate it.
func (f *Formatter) Tokens() []token.Token { return f.tokens }

// Len returns the number of tokens.
func (f *Formatter) Len() int { return len(f.tokens) }

// TokenAt returns the token at index i, or a zero token and false when i is
// out of range.
func (f *Formatter) TokenAt(i int) (token.Token, bool) {
	if i < 0 || i >= len(f.tokens) {
		return token.Token{}, false
	}
	return f.tokens[i], true
}

// InsertAt inserts tok at index i, shifting later tokens right.
func (f *Formatter) InsertAt(i int, tok token.Token) {
	f.tokens = append(f.tokens, token.Token{})
	copy(f.tokens[i+1:], f.tokens[i:])
	f.tokens[i] = tok
}

// InsertTokensAt inserts toks at index i in order.
func (f *Formatter) InsertTokensAt(i int, toks []token.Token) {
	f.tokens = append(f.tokens[:i], append(append([]token.Token{}, toks...), f.tokens[i:]...)...)
}

// RemoveAt removes the token at index i.
func (f *Formatter) RemoveAt(i int) {
	f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
}

// ReplaceAt replaces the token at index i with tok.
func (f *Formatter) ReplaceAt(i int, tok token.Token) {
	f.tokens[i] = tok
}

// RemoveRange removes tokens in [start, end).
func (f *Formatter) RemoveRange(start, end int) {
	f.tokens = append(f.tokens[:start], f.tokens[end:]...)
}

// ReplaceRange replaces tokens in [start, end) with toks.
func (f *Formatter) ReplaceRange(start, end int, toks []token.Token) {
	f.tokens = append(f.tokens[:start], append(append([]token.Token{}, toks...), f.tokens[end:]...)...)
}

// RemoveLast removes the final token, if any.
func (f *Formatter) RemoveLast() {
	if n := len(f.tokens); n > 0 {
		f.tokens = f.tokens[:n-1]
	}
}

// IndexOfNext returns the index of the first token at or after from+1 that
// matches, or -1.
func (f *Formatter) IndexOfNext(from int, match func(token.Token) bool) int {
	for i := from + 1; i < len(f.tokens); i++ {
		if match(f.tokens[i]) {
			return i
		}
	}
	return -1
}

// IndexOfPrevious returns the index of the last token before from that
// matches, or -1.
func (f *Formatter) IndexOfPrevious(from int, match func(token.Token) bool) int {
	for i := from - 1; i >= 0; i-- {
		if match(f.tokens[i]) {
			return i
		}
	}
	return -1
}

// NextNonWhitespace returns the index of the next token after from that is
// not whitespace, or -1.
func (f *Formatter) NextNonWhitespace(from int) int {
	return f.IndexOfNext(from, func(t token.Token) bool { return !t.IsWhitespace() })
}

// NextNonWhitespaceOrLinebreak returns the index of the next token after
// from that is neither whitespace nor a line break, or -1.
func (f *Formatter) NextNonWhitespaceOrLinebreak(from int) int {
	return f.IndexOfNext(from, func(t token.Token) bool { return !t.IsWhitespaceOrLinebreak() })
}

// NextNonWhitespaceOrCommentOrLinebreak returns the index of the next token
// after from that is not whitespace, comment, or line break, or -1.
func (f *Formatter) NextNonWhitespaceOrCommentOrLinebreak(from int) int {
	return f.IndexOfNext(from, func(t token.Token) bool { return !t.IsWhitespaceOrCommentOrLinebreak() })
}

// PreviousNonWhitespace returns the index of the previous token before from
// that is not whitespace, or -1.
func (f *Formatter) PreviousNonWhitespace(from int) int {
	return f.IndexOfPrevious(from, func(t token.Token) bool { return !t.IsWhitespace() })
}

// PreviousNonWhitespaceOrLinebreak returns the index of the previous token
// before from that is neither whitespace nor a line break, or -1.
func (f *Formatter) PreviousNonWhitespaceOrLinebreak(from int) int {
	return f.IndexOfPrevious(from, func(t token.Token) bool { return !t.IsWhitespaceOrLinebreak() })
}

// PreviousNonWhitespaceOrCommentOrLinebreak returns the index of the
// previous token before from that is not whitespace, comment, or line
// break, or -1.
func (f *Formatter) PreviousNonWhitespaceOrCommentOrLinebreak(from int) int {
	return f.IndexOfPrevious(from, func(t token.Token) bool { return !t.IsWhitespaceOrCommentOrLinebreak() })
}

// ScopeAt returns the innermost scope-opening token enclosing index i, and
// its index, by walking backward with a balanced-scope counter. The second
// return is -1 when i is at file scope. A `case` or `default` token is
// treated as opening a scope that runs to the next `case`, `default`, or
// the closing `}`.
func (f *Formatter) ScopeAt(i int) (token.Token, int) {
	depths := map[string]int{}
	balanced := func() bool {
		for _, d := range depths {
			if d > 0 {
				return false
			}
		}
		return true
	}
	for j := i - 1; j >= 0; j-- {
		tok := f.tokens[j]
		switch tok.Kind {
		case token.KindStartOfScope:
			if depths[tok.Text] == 0 {
				return tok, j
			}
			depths[tok.Text]--
		case token.KindEndOfScope:
			switch tok.Text {
			case "case", "default":
				// A case scope is closed only by a later case, default,
				// or }; with every bracket balanced, this marker still
				// encloses i.
				if balanced() {
					return tok, j
				}
			case "}":
				depths["{"]++
			case ")":
				depths["("]++
			case "]":
				depths["["]++
			case ">":
				depths["<"]++
			case "*/":
				depths["/*"]++
			case "\"":
				depths["\""]++
			}
		}
	}
	return token.Token{}, -1
}

// StartOfLine returns the index of the first token of the line containing
// index i: the index just after the previous line break, or 0.
func (f *Formatter) StartOfLine(at int) int {
	for i := at - 1; i >= 0; i-- {
		if f.tokens[i].IsLinebreak() {
			return i + 1
		}
	}
	return 0
}

// IndentTokenForLineAt returns the whitespace token that begins the line
// containing index i, and its index, or ok=false when the line has no
// leading whitespace.
func (f *Formatter) IndentTokenForLineAt(i int) (token.Token, int, bool) {
	start := f.StartOfLine(i)
	if start < len(f.tokens) && f.tokens[start].IsWhitespace() {
		return f.tokens[start], start, true
	}
	return token.Token{}, -1, false
}

// ForEach invokes body(i, tok) for every token matching match, in order.
// body may mutate the sequence through the Formatter; iteration resumes
// after the match, adjusted for any net insertion or removal, so tokens a
// rule inserts are never revisited within the same pass.
func (f *Formatter) ForEach(match func(token.Token) bool, body func(i int, tok token.Token)) {
	for i := 0; i < len(f.tokens); i++ {
		tok := f.tokens[i]
		if !match(tok) {
			continue
		}
		before := len(f.tokens)
		body(i, tok)
		i += len(f.tokens) - before
		if i >= len(f.tokens) {
			return
		}
	}
}

// ForEachText invokes body for every token whose payload equals text.
func (f *Formatter) ForEachText(text string, body func(i int, tok token.Token)) {
	f.ForEach(func(t token.Token) bool { return t.Text == text }, body)
}
