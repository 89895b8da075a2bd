package format

import "github.com/yaklabco/swiftfmt/pkg/token"

func ruleBraces(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "{"
	}, func(i int, _ token.Token) {
		close := matchingCloserIndex(f, i)
		if close < 0 {
			return
		}
		multiline := false
		for j := i + 1; j < close; j++ {
			if f.tokens[j].IsLinebreak() {
				multiline = true
				break
			}
		}
		if !multiline {
			return
		}
		if f.Options.AllmanBraces {
			prev := f.PreviousNonWhitespace(i)
			if prev < 0 || f.tokens[prev].IsLinebreak() {
				return
			}
			switch f.tokens[prev].Kind {
			case token.KindIdentifier, token.KindKeyword, token.KindEndOfScope:
				var indent token.Token
				hasIndent := false
				if tok, _, ok := f.IndentTokenForLineAt(prev); ok {
					indent = tok
					hasIndent = true
				}
				if w, ok := f.TokenAt(i - 1); ok && w.IsWhitespace() {
					f.RemoveAt(i - 1)
					i--
				}
				f.InsertAt(i, token.Linebreak(f.Options.Linebreak))
				if hasIndent {
					f.InsertAt(i+1, indent)
				}
			}
			return
		}
		// K&R: pull the brace up to the previous significant token.
		// A comment between blocks the move, which keeps it in place.
		prev := f.PreviousNonWhitespaceOrLinebreak(i)
		if prev < 0 || prev == i-1 {
			return
		}
		hasBreak := false
		for j := prev + 1; j < i; j++ {
			if f.tokens[j].IsLinebreak() {
				hasBreak = true
				break
			}
		}
		if !hasBreak {
			return
		}
		switch t := f.tokens[prev]; {
		case t.Kind == token.KindIdentifier, t.Kind == token.KindKeyword:
			f.ReplaceRange(prev+1, i, []token.Token{token.Whitespace(" ")})
		case t.Kind == token.KindEndOfScope:
			switch t.Text {
			case ")", "]", ">", "}":
				f.ReplaceRange(prev+1, i, []token.Token{token.Whitespace(" ")})
			}
		}
	})
}

func ruleElseOnSameLine(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		if t.Kind != token.KindKeyword {
			return false
		}
		return t.Text == "else" || t.Text == "catch" || t.Text == "while"
	}, func(i int, t token.Token) {
		prev := f.PreviousNonWhitespaceOrCommentOrLinebreak(i)
		if prev < 0 {
			return
		}
		brace := f.tokens[prev]
		if brace.Kind != token.KindEndOfScope || brace.Text != "}" {
			return
		}
		open := matchingOpenerIndex(f, prev)
		if open < 0 {
			return
		}
		intro := introKeyword(f, open)
		switch t.Text {
		case "else":
			if intro != "if" && intro != "else" && intro != "do" {
				return
			}
		case "catch":
			if intro != "do" {
				return
			}
		case "while":
			if intro != "repeat" {
				return
			}
		}
		// the brace must stand at the start of its line
		start := f.StartOfLine(prev)
		for j := start; j < prev; j++ {
			if !f.tokens[j].IsWhitespace() {
				return
			}
		}
		if f.Options.AllmanBraces {
			repl := []token.Token{token.Linebreak(f.Options.Linebreak)}
			if indent, _, ok := f.IndentTokenForLineAt(prev); ok {
				repl = append(repl, indent)
			}
			f.ReplaceRange(prev+1, i, repl)
			return
		}
		hasBreak := false
		for j := prev + 1; j < i; j++ {
			if f.tokens[j].IsLinebreak() {
				hasBreak = true
				break
			}
		}
		if hasBreak {
			f.ReplaceRange(prev+1, i, []token.Token{token.Whitespace(" ")})
		}
	})
}

// introKeyword returns the keyword introducing the statement that owns the
// { at index i: the earliest control keyword between the statement start
// and the brace. guard wins over a trailing else.
func introKeyword(f *Formatter, i int) string {
	intro := ""
	for j := i - 1; j >= 0; j-- {
		t := f.tokens[j]
		switch t.Kind {
		case token.KindStartOfScope:
			if t.Text == "{" {
				return intro
			}
		case token.KindEndOfScope:
			switch t.Text {
			case "}", "case", "default":
				return intro
			case ")", "]", ">":
				if open := matchingOpenerIndex(f, j); open >= 0 {
					j = open
				}
			}
		case token.KindSymbol:
			if t.Text == ";" {
				return intro
			}
		case token.KindKeyword:
			switch t.Text {
			case "if", "guard", "do", "repeat", "else", "for", "while", "switch":
				intro = t.Text
			}
		}
	}
	return intro
}

func ruleTrailingCommas(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == "]"
	}, func(i int, _ token.Token) {
		prev := f.IndexOfPrevious(i, func(t token.Token) bool {
			return !t.IsWhitespaceOrComment()
		})
		if prev < 0 || !f.tokens[prev].IsLinebreak() {
			// single-line literal
			return
		}
		last := f.PreviousNonWhitespaceOrCommentOrLinebreak(prev + 1)
		if last < 0 {
			return
		}
		switch f.tokens[last].Text {
		case "[", ":":
			// empty literal or subscript label
		case ",":
			if !f.Options.TrailingCommas {
				f.RemoveAt(last)
			}
		default:
			if f.Options.TrailingCommas {
				f.InsertAt(last+1, token.Symbol(","))
			}
		}
	})
}

// specifierOrder is the canonical declaration specifier order.
var specifierOrder = []string{
	"private(set)", "fileprivate(set)", "internal(set)", "public(set)",
	"private", "fileprivate", "internal", "public", "open",
	"final", "dynamic",
	"optional", "required",
	"convenience",
	"override",
	"lazy",
	"weak", "unowned",
	"static", "class",
	"mutating", "nonmutating",
	"prefix", "postfix",
}

var validSpecifiers = func() map[string]bool {
	m := make(map[string]bool, len(specifierOrder))
	for _, s := range specifierOrder {
		m[s] = true
	}
	return m
}()

func ruleSpecifiers(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		if t.Kind != token.KindKeyword {
			return false
		}
		switch t.Text {
		case "let", "func", "var", "class", "extension", "init", "enum",
			"struct", "typealias", "subscript", "associatedtype", "protocol":
			return true
		default:
			return false
		}
	}, func(i int, _ token.Token) {
		// walk backward collecting specifier units; each unit's slice
		// carries its trailing trivia up to the next unit
		units := map[string][]token.Token{}
		end := i
		for {
			p := f.PreviousNonWhitespaceOrCommentOrLinebreak(end)
			if p < 0 {
				break
			}
			t := f.tokens[p]
			name := ""
			start := p
			switch {
			case t.IsIdentifierOrKeyword() && validSpecifiers[t.Text]:
				name = t.Text
			case t.Kind == token.KindEndOfScope && t.Text == ")":
				s := f.PreviousNonWhitespaceOrCommentOrLinebreak(p)
				if s < 0 || f.tokens[s].Text != "set" {
					break
				}
				o := f.PreviousNonWhitespaceOrCommentOrLinebreak(s)
				if o < 0 || f.tokens[o].Kind != token.KindStartOfScope || f.tokens[o].Text != "(" {
					break
				}
				k := f.PreviousNonWhitespaceOrCommentOrLinebreak(o)
				if k < 0 || !f.tokens[k].IsIdentifierOrKeyword() ||
					!validSpecifiers[f.tokens[k].Text+"(set)"] {
					break
				}
				name = f.tokens[k].Text + "(set)"
				start = k
			}
			if name == "" {
				break
			}
			unit := make([]token.Token, end-start)
			copy(unit, f.tokens[start:end])
			units[name] = unit
			end = start
		}
		if len(units) == 0 {
			return
		}
		var rebuilt []token.Token
		for _, name := range specifierOrder {
			if unit, ok := units[name]; ok {
				rebuilt = append(rebuilt, unit...)
			}
		}
		f.ReplaceRange(end, i, rebuilt)
	})
}

func ruleRedundantParens(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "("
	}, func(i int, _ token.Token) {
		prev := f.PreviousNonWhitespaceOrCommentOrLinebreak(i)
		if prev < 0 || f.tokens[prev].Kind != token.KindKeyword {
			return
		}
		keyword := f.tokens[prev].Text
		switch keyword {
		case "if", "while", "switch":
		default:
			return
		}
		close := matchingCloserIndex(f, i)
		if close < 0 {
			return
		}
		next := f.NextNonWhitespaceOrCommentOrLinebreak(close)
		if next < 0 {
			return
		}
		if nt := f.tokens[next]; nt.Kind != token.KindStartOfScope || nt.Text != "{" {
			return
		}
		if keyword == "switch" {
			// a comma suggests a tuple subject; keep the parens
			for j := i + 1; j < close; j++ {
				if f.tokens[j].Kind == token.KindSymbol && f.tokens[j].Text == "," {
					return
				}
			}
		}
		if w, ok := f.TokenAt(close - 1); ok && w.IsWhitespace() {
			f.RemoveAt(close - 1)
			close--
		}
		f.RemoveAt(close)
		if w, ok := f.TokenAt(i - 1); ok && w.IsWhitespace() {
			f.RemoveAt(i)
			return
		}
		f.ReplaceAt(i, token.Whitespace(" "))
	})
}

func ruleVoid(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindIdentifier && t.Text == "Void"
	}, func(i int, _ token.Token) {
		prev := f.PreviousNonWhitespaceOrCommentOrLinebreak(i)
		next := f.NextNonWhitespaceOrCommentOrLinebreak(i)
		if prev >= 0 && next >= 0 &&
			f.tokens[prev].Kind == token.KindStartOfScope && f.tokens[prev].Text == "(" &&
			f.tokens[next].Kind == token.KindEndOfScope && f.tokens[next].Text == ")" {
			// (Void) in a function-type position becomes ()
			after := f.NextNonWhitespaceOrCommentOrLinebreak(next)
			if after < 0 || !isFunctionTypeArrow(f.tokens[after]) {
				return
			}
			f.ReplaceRange(prev, next+1, []token.Token{
				token.StartOfScope("("), token.EndOfScope(")"),
			})
			return
		}
		if f.Options.UseVoid {
			return
		}
		if prev < 0 || f.tokens[prev].Kind != token.KindSymbol || f.tokens[prev].Text != "->" {
			return
		}
		f.ReplaceRange(i, i+1, []token.Token{
			token.StartOfScope("("), token.EndOfScope(")"),
		})
	})
	if !f.Options.UseVoid {
		return
	}
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "("
	}, func(i int, _ token.Token) {
		prev := f.PreviousNonWhitespaceOrCommentOrLinebreak(i)
		if prev < 0 || f.tokens[prev].Kind != token.KindSymbol || f.tokens[prev].Text != "->" {
			return
		}
		close := f.NextNonWhitespaceOrLinebreak(i)
		if close < 0 || f.tokens[close].Kind != token.KindEndOfScope || f.tokens[close].Text != ")" {
			return
		}
		after := f.NextNonWhitespaceOrCommentOrLinebreak(close)
		if after >= 0 && isFunctionTypeArrow(f.tokens[after]) {
			// () is the argument list of a returned function type
			return
		}
		f.ReplaceRange(i, close+1, []token.Token{token.Identifier("Void")})
	})
}

func isFunctionTypeArrow(t token.Token) bool {
	if t.Kind == token.KindSymbol && t.Text == "->" {
		return true
	}
	return t.Kind == token.KindKeyword && (t.Text == "throws" || t.Text == "rethrows")
}
