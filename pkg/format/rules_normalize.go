package format

import (
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/token"
)

func ruleLinebreaks(f *Formatter) {
	f.ForEach(func(t token.Token) bool { return t.IsLinebreak() }, func(i int, t token.Token) {
		if t.Text != f.Options.Linebreak {
			f.ReplaceAt(i, token.Linebreak(f.Options.Linebreak))
		}
	})
}

func ruleSemicolons(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindSymbol && t.Text == ";"
	}, func(i int, _ token.Token) {
		next := f.NextNonWhitespace(i)
		if next < 0 {
			// end of file
			f.RemoveAt(i)
			return
		}
		nextTok := f.tokens[next]
		prev := f.PreviousNonWhitespace(i)
		switch {
		case prev < 0, nextTok.Kind == token.KindEndOfScope && nextTok.Text == "}":
			// start of file or dangling before a closing brace
			f.RemoveAt(i)
		case f.tokens[prev].Text == "return", insideParenScope(f, i):
			// not safe to remove: return; and legacy for(;;) forms
		case nextTok.IsLinebreak():
			f.RemoveAt(i)
		case !f.Options.AllowInlineSemicolons:
			// replace with a line break, reproducing the line's indent
			if n, ok := f.TokenAt(i + 1); ok && n.IsWhitespace() {
				f.RemoveAt(i + 1)
			}
			if indent, _, ok := f.IndentTokenForLineAt(i); ok {
				f.InsertAt(i+1, indent)
			}
			f.ReplaceAt(i, token.Linebreak(f.Options.Linebreak))
		}
	})
}

func insideParenScope(f *Formatter, i int) bool {
	scope, _ := f.ScopeAt(i)
	return scope.Kind == token.KindStartOfScope && scope.Text == "("
}

func ruleRanges(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindSymbol && (t.Text == "..." || t.Text == "..<")
	}, func(i int, _ token.Token) {
		if f.Options.SpaceAroundRangeOperators {
			if next := f.NextNonWhitespace(i); next >= 0 {
				switch f.tokens[next].Text {
				case ")", ",":
					// one-sided range used as an argument default
					return
				}
			}
			if next, ok := f.TokenAt(i + 1); ok && !next.IsWhitespaceOrLinebreak() {
				f.InsertAt(i+1, token.Whitespace(" "))
			}
			if prev, ok := f.TokenAt(i - 1); ok && !prev.IsWhitespaceOrLinebreak() {
				f.InsertAt(i, token.Whitespace(" "))
			}
			return
		}
		if next, ok := f.TokenAt(i + 1); ok && next.IsWhitespace() {
			if after, ok := f.TokenAt(i + 2); !ok || !after.IsLinebreak() {
				f.RemoveAt(i + 1)
			}
		}
		if prev, ok := f.TokenAt(i - 1); ok && prev.IsWhitespace() {
			if before, ok := f.TokenAt(i - 2); !ok || !before.IsLinebreak() {
				f.RemoveAt(i - 1)
			}
		}
	})
}

func ruleTodos(f *Formatter) {
	tags := []string{"TODO", "MARK", "FIXME"}
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindCommentBody
	}, func(i int, t token.Token) {
		for _, tag := range tags {
			if !strings.HasPrefix(t.Text, tag) {
				continue
			}
			suffix := t.Text[len(tag):]
			if suffix == "" {
				f.ReplaceAt(i, token.CommentBody(tag+":"))
				return
			}
			if suffix[0] != ' ' && suffix[0] != ':' {
				// probably an identifier like TODOList
				return
			}
			suffix = strings.TrimLeft(suffix, " :")
			if suffix == "" {
				f.ReplaceAt(i, token.CommentBody(tag+":"))
			} else {
				f.ReplaceAt(i, token.CommentBody(tag+": "+suffix))
			}
			return
		}
	})
}

func ruleTrailingWhitespace(f *Formatter) {
	f.ForEach(func(t token.Token) bool { return t.IsLinebreak() }, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok || !prev.IsWhitespace() {
			return
		}
		if !f.Options.TruncateBlankLines {
			// the whitespace may be a blank line's indent, which is kept
			if before, ok := f.TokenAt(i - 2); !ok || before.IsLinebreak() {
				return
			}
		}
		f.RemoveAt(i - 1)
	})
	if n := f.Len(); n > 0 && f.tokens[n-1].IsWhitespace() {
		f.RemoveLast()
	}
}

func ruleConsecutiveBlankLines(f *Formatter) {
	linebreakCount := 0
	for i := 0; i < f.Len(); i++ {
		t := f.tokens[i]
		switch {
		case t.IsLinebreak():
			linebreakCount++
			if linebreakCount > 2 {
				if prev, ok := f.TokenAt(i - 1); ok && prev.IsWhitespace() {
					f.RemoveAt(i - 1)
					i--
				}
				f.RemoveAt(i)
				i--
				linebreakCount--
			}
		case t.IsWhitespace():
		default:
			linebreakCount = 0
		}
	}
	if !f.Options.Fragment && linebreakCount > 1 {
		// a single trailing blank line collapses at end of file
		if n := f.Len(); n > 0 && f.tokens[n-1].IsWhitespace() {
			f.RemoveLast()
		}
		f.RemoveLast()
	}
}

func ruleBlankLinesAtEndOfScope(f *Formatter) {
	if !f.Options.RemoveBlankLines {
		return
	}
	f.ForEach(func(t token.Token) bool {
		if t.Kind != token.KindEndOfScope {
			return false
		}
		switch t.Text {
		case "}", ")", "]", ">":
			return true
		default:
			return false
		}
	}, func(i int, _ token.Token) {
		// the closer must be alone on its line
		if next := f.NextNonWhitespace(i); next >= 0 && !f.tokens[next].IsLinebreak() {
			return
		}
		prev := f.PreviousNonWhitespaceOrLinebreak(i)
		if prev < 0 {
			return
		}
		lastBreak := -1
		breaks := 0
		for j := prev + 1; j < i; j++ {
			if f.tokens[j].IsLinebreak() {
				breaks++
				lastBreak = j
			}
		}
		if breaks > 1 {
			f.RemoveRange(prev+1, lastBreak)
		}
	})
}

func ruleBlankLinesBetweenScopes(f *Formatter) {
	if !f.Options.InsertBlankLines {
		return
	}
	var stack []bool
	for i := 0; i < f.Len(); i++ {
		t := f.tokens[i]
		switch {
		case t.Kind == token.KindStartOfScope && t.Text == "{":
			stack = append(stack, isSpaceableScope(f, i))
		case t.Kind == token.KindEndOfScope && t.Text == "}":
			if len(stack) == 0 {
				continue
			}
			spaceable := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !spaceable {
				continue
			}
			i += ensureBlankLineAfterScope(f, i)
		}
	}
}

// isSpaceableScope reports whether the { at index i opens a class, struct,
// enum, or extension body, by scanning the introducing statement. func and
// var bodies are not spaceable.
func isSpaceableScope(f *Formatter, i int) bool {
	for j := i - 1; j >= 0; j-- {
		t := f.tokens[j]
		switch t.Kind {
		case token.KindStartOfScope:
			if t.Text == "{" {
				return false
			}
		case token.KindEndOfScope:
			if t.Text == "}" || t.Text == "case" || t.Text == "default" {
				return false
			}
		case token.KindSymbol:
			if t.Text == ";" {
				return false
			}
		case token.KindKeyword:
			switch t.Text {
			case "class", "struct", "enum", "extension":
				return true
			case "repeat", "func", "var", "let", "init", "subscript", "if",
				"guard", "else", "for", "while", "switch", "do", "catch",
				"protocol":
				return false
			}
		}
	}
	return false
}

// ensureBlankLineAfterScope inserts a blank line after the closing brace at
// index i when another construct follows, returning the number of tokens
// inserted.
func ensureBlankLineAfterScope(f *Formatter, i int) int {
	next := f.NextNonWhitespaceOrCommentOrLinebreak(i)
	if next < 0 {
		return 0
	}
	nt := f.tokens[next]
	switch nt.Kind {
	case token.KindEndOfScope, token.KindError:
		return 0
	case token.KindSymbol:
		switch nt.Text {
		case ".", ",", ":", ";":
			return 0
		}
	case token.KindKeyword:
		switch nt.Text {
		// a while continuing a repeat body never arrives here, because a
		// repeat body is not spaceable; else and catch always continue
		case "else", "catch":
			return 0
		}
	}
	firstBreak := -1
	breaks := 0
	for j := i + 1; j < next; j++ {
		if f.tokens[j].IsLinebreak() {
			breaks++
			if firstBreak < 0 {
				firstBreak = j
			}
		}
	}
	if breaks == 0 || breaks > 1 {
		// inline brace, or blank line already present
		return 0
	}
	f.InsertAt(firstBreak+1, token.Linebreak(f.Options.Linebreak))
	return 1
}

func ruleLinebreakAtEndOfFile(f *Formatter) {
	if f.Options.Fragment {
		return
	}
	last := f.IndexOfPrevious(f.Len(), func(t token.Token) bool {
		return !t.IsWhitespace() && !t.IsError()
	})
	if last < 0 {
		return
	}
	if !f.tokens[last].IsLinebreak() {
		f.InsertAt(f.Len(), token.Linebreak(f.Options.Linebreak))
	}
}

func ruleStripHeader(f *Formatter) {
	if !f.Options.StripHeader || f.Options.Fragment {
		return
	}
	i := 0
	seen := false
	for i < f.Len() {
		t := f.tokens[i]
		if t.Kind != token.KindStartOfScope || t.Text != "//" {
			break
		}
		seen = true
		end := f.IndexOfNext(i, func(t token.Token) bool { return t.IsLinebreak() })
		if end < 0 {
			i = f.Len()
			break
		}
		i = end + 1
		if next, ok := f.TokenAt(i); ok && next.IsWhitespace() {
			if after, ok := f.TokenAt(i + 1); ok &&
				after.Kind == token.KindStartOfScope && after.Text == "//" {
				i++
			}
		}
	}
	if !seen {
		return
	}
	// at most one blank line after the header block
	if next, ok := f.TokenAt(i); ok && next.IsLinebreak() {
		i++
	}
	f.RemoveRange(0, i)
}
