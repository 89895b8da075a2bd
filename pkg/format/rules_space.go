package format

import "github.com/yaklabco/swiftfmt/pkg/token"

// keywordTakesSpaceBeforeParen reports whether a space belongs between the
// keyword at index ki and a following (.
func keywordTakesSpaceBeforeParen(f *Formatter, ki, parenIndex int) bool {
	switch f.tokens[ki].Text {
	case "private", "fileprivate", "internal", "init", "subscript":
		return false
	case "@escaping", "@noescape":
		return true
	case "@autoclosure":
		if n := f.NextNonWhitespaceOrLinebreak(parenIndex); n >= 0 && f.tokens[n].Text == "escaping" {
			// @autoclosure(escaping) binds the parens to the attribute
			return false
		}
		return true
	default:
		t := f.tokens[ki]
		if t.HasPrefix("@") || t.HasPrefix("#") {
			return false
		}
		return true
	}
}

func ruleSpaceAroundParens(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "("
	}, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok {
			return
		}
		switch prev.Kind {
		case token.KindKeyword, token.KindIdentifier:
			if prev.HasPrefix("@") || prev.Kind == token.KindKeyword {
				if keywordTakesSpaceBeforeParen(f, i-1, i) {
					f.InsertAt(i, token.Whitespace(" "))
				}
			}
		case token.KindEndOfScope:
			if (prev.Text == "]" && isCaptureList(f, i-1)) ||
				(prev.Text == ")" && isAttributeArgumentsEnd(f, i-1)) {
				f.InsertAt(i, token.Whitespace(" "))
			}
		case token.KindWhitespace:
			before, ok := f.TokenAt(i - 2)
			if !ok {
				return
			}
			switch before.Kind {
			case token.KindKeyword:
				if !keywordTakesSpaceBeforeParen(f, i-2, i) {
					f.RemoveAt(i - 1)
				}
			case token.KindIdentifier:
				if before.HasPrefix("@") {
					if !keywordTakesSpaceBeforeParen(f, i-2, i) {
						f.RemoveAt(i - 1)
					}
					return
				}
				f.RemoveAt(i - 1)
			case token.KindNumber:
				f.RemoveAt(i - 1)
			case token.KindEndOfScope:
				switch before.Text {
				case "}", ">":
					f.RemoveAt(i - 1)
				case "]":
					if !isCaptureList(f, i-2) {
						f.RemoveAt(i - 1)
					}
				case ")":
					if !isAttributeArgumentsEnd(f, i-2) {
						f.RemoveAt(i - 1)
					}
				}
			}
		}
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == ")"
	}, func(i int, _ token.Token) {
		next, ok := f.TokenAt(i + 1)
		if !ok {
			return
		}
		switch next.Kind {
		case token.KindIdentifier, token.KindKeyword:
			f.InsertAt(i+1, token.Whitespace(" "))
		case token.KindStartOfScope:
			if next.Text == "{" {
				f.InsertAt(i+1, token.Whitespace(" "))
			}
		case token.KindWhitespace:
			if after, ok := f.TokenAt(i + 2); ok &&
				after.Kind == token.KindStartOfScope && after.Text == "[" {
				f.RemoveAt(i + 1)
			}
		}
	})
}

// removePaddingInside strips the whitespace immediately inside a scope
// delimiter pair unless the other side of the whitespace is a line break.
func removePaddingInside(f *Formatter, open, close string) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == open
	}, func(i int, _ token.Token) {
		if next, ok := f.TokenAt(i + 1); ok && next.IsWhitespace() {
			if after, ok := f.TokenAt(i + 2); !ok || !after.IsLinebreak() {
				f.RemoveAt(i + 1)
			}
		}
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == close
	}, func(i int, _ token.Token) {
		if prev, ok := f.TokenAt(i - 1); ok && prev.IsWhitespace() {
			if before, ok := f.TokenAt(i - 2); !ok || !before.IsLinebreak() {
				f.RemoveAt(i - 1)
			}
		}
	})
}

func ruleSpaceInsideParens(f *Formatter) {
	removePaddingInside(f, "(", ")")
}

func ruleSpaceAroundBrackets(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "["
	}, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok {
			return
		}
		switch prev.Kind {
		case token.KindKeyword:
			f.InsertAt(i, token.Whitespace(" "))
		case token.KindWhitespace:
			if before, ok := f.TokenAt(i - 2); ok {
				switch {
				case before.Kind == token.KindIdentifier,
					before.Kind == token.KindNumber,
					before.Kind == token.KindEndOfScope && before.Text == "]",
					before.Kind == token.KindEndOfScope && before.Text == ")":
					f.RemoveAt(i - 1)
				}
			}
		}
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == "]"
	}, func(i int, _ token.Token) {
		next, ok := f.TokenAt(i + 1)
		if !ok {
			return
		}
		switch next.Kind {
		case token.KindIdentifier, token.KindKeyword:
			f.InsertAt(i+1, token.Whitespace(" "))
		case token.KindStartOfScope:
			if next.Text == "{" {
				f.InsertAt(i+1, token.Whitespace(" "))
			}
		case token.KindWhitespace:
			if after, ok := f.TokenAt(i + 2); ok &&
				after.Kind == token.KindStartOfScope && after.Text == "[" {
				f.RemoveAt(i + 1)
			}
		}
	})
}

func ruleSpaceInsideBrackets(f *Formatter) {
	removePaddingInside(f, "[", "]")
}

func ruleSpaceAroundBraces(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "{"
	}, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok {
			return
		}
		switch prev.Kind {
		case token.KindWhitespace, token.KindLinebreak:
		case token.KindStartOfScope:
			if prev.Text == "\"" {
				f.InsertAt(i, token.Whitespace(" "))
			}
		default:
			f.InsertAt(i, token.Whitespace(" "))
		}
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == "}"
	}, func(i int, _ token.Token) {
		if next, ok := f.TokenAt(i + 1); ok && next.IsIdentifierOrKeyword() {
			f.InsertAt(i+1, token.Whitespace(" "))
		}
	})
}

func ruleSpaceInsideBraces(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "{"
	}, func(i int, _ token.Token) {
		next, ok := f.TokenAt(i + 1)
		if !ok {
			return
		}
		switch {
		case next.IsWhitespace():
			// collapse padding in empty braces
			if after, ok := f.TokenAt(i + 2); ok &&
				after.Kind == token.KindEndOfScope && after.Text == "}" {
				f.RemoveAt(i + 1)
			}
		case next.IsLinebreak():
		case next.Kind == token.KindEndOfScope && next.Text == "}":
		default:
			f.InsertAt(i+1, token.Whitespace(" "))
		}
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == "}"
	}, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok {
			return
		}
		if !prev.IsWhitespaceOrLinebreak() &&
			!(prev.Kind == token.KindStartOfScope && prev.Text == "{") {
			f.InsertAt(i, token.Whitespace(" "))
		}
	})
}

func ruleSpaceAroundGenerics(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "<"
	}, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok || !prev.IsWhitespace() {
			return
		}
		if before, ok := f.TokenAt(i - 2); ok &&
			(before.Kind == token.KindIdentifier ||
				(before.Kind == token.KindEndOfScope && before.Text == "]")) {
			f.RemoveAt(i - 1)
		}
	})
}

func ruleSpaceInsideGenerics(f *Formatter) {
	removePaddingInside(f, "<", ">")
}

func ruleSpaceAroundComments(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && (t.Text == "//" || t.Text == "/*")
	}, func(i int, _ token.Token) {
		if prev, ok := f.TokenAt(i - 1); ok &&
			!prev.IsWhitespaceOrLinebreak() && prev.Kind != token.KindStartOfScope {
			f.InsertAt(i, token.Whitespace(" "))
		}
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == "*/"
	}, func(i int, _ token.Token) {
		if next, ok := f.TokenAt(i + 1); ok && !next.IsWhitespaceOrLinebreak() &&
			!(next.Kind == token.KindEndOfScope && next.Text == ")") {
			f.InsertAt(i+1, token.Whitespace(" "))
		}
	})
}

func ruleSpaceInsideComments(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "//"
	}, func(i int, _ token.Token) {
		next, ok := f.TokenAt(i + 1)
		if !ok || next.Kind != token.KindCommentBody {
			return
		}
		// Leave ///, //!, and //: markers alone.
		if next.HasPrefix("/") || next.HasPrefix("!") || next.HasPrefix(":") {
			return
		}
		f.InsertAt(i+1, token.Whitespace(" "))
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindStartOfScope && t.Text == "/*"
	}, func(i int, _ token.Token) {
		next, ok := f.TokenAt(i + 1)
		if !ok || next.Kind != token.KindCommentBody {
			return
		}
		if next.HasPrefix("*") || next.HasPrefix("!") {
			return
		}
		f.InsertAt(i+1, token.Whitespace(" "))
	})
	f.ForEach(func(t token.Token) bool {
		return t.Kind == token.KindEndOfScope && t.Text == "*/"
	}, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok || prev.Kind != token.KindCommentBody {
			return
		}
		if len(prev.Text) > 0 && prev.Text[len(prev.Text)-1] == '*' {
			return
		}
		f.InsertAt(i, token.Whitespace(" "))
	})
}

func ruleConsecutiveSpaces(f *Formatter) {
	f.ForEach(func(t token.Token) bool {
		return t.IsWhitespace() && len(t.Text) > 1
	}, func(i int, _ token.Token) {
		prev, ok := f.TokenAt(i - 1)
		if !ok || prev.IsLinebreak() {
			// leading indent is the indenter's business
			return
		}
		if scope, _ := f.ScopeAt(i); scope.Text == "/*" || scope.Text == "//" {
			return
		}
		f.ReplaceAt(i, token.Whitespace(" "))
	})
}

func ruleSpaceAroundOperators(f *Formatter) {
	isLvalue := func(t token.Token) bool {
		switch t.Kind {
		case token.KindIdentifier, token.KindNumber, token.KindEndOfScope:
			return true
		case token.KindSymbol:
			return t.Text == "?" || t.Text == "!"
		default:
			return false
		}
	}
	isRvalue := func(t token.Token) bool {
		switch t.Kind {
		case token.KindIdentifier, token.KindNumber, token.KindStartOfScope:
			return true
		default:
			return false
		}
	}
	spaceAfterKeyword := func(s string) bool {
		switch s {
		case "as", "case", "guard", "if", "in", "is", "let", "return",
			"switch", "throw", "try", "where", "while":
			return true
		default:
			return false
		}
	}

	// Ternary ? tokens are pushed as pseudo scopes; the matching : pops.
	var scopes []token.Token

	for i := 0; i < f.Len(); i++ {
		tok := f.tokens[i]
		switch tok.Kind {
		case token.KindStartOfScope:
			scopes = append(scopes, tok)
		case token.KindLinebreak:
			// line breaks terminate line comments and unterminated strings
			for n := len(scopes); n > 0 && scopes[n-1].Kind == token.KindStartOfScope &&
				(scopes[n-1].Text == "//" || scopes[n-1].Text == "\""); n-- {
				scopes = scopes[:n-1]
			}
		case token.KindEndOfScope:
			if tok.Text == "case" || tok.Text == "default" {
				continue
			}
			if n := len(scopes); n > 0 {
				if scopes[n-1].Kind == token.KindSymbol && tok.Text != ":" {
					// unterminated ternary inside a closing scope
					scopes = scopes[:n-1]
					n--
				}
				if n > 0 {
					scopes = scopes[:n-1]
				}
			}
		case token.KindSymbol:
			switch tok.Text {
			case ":", ",", ";":
				if next, ok := f.TokenAt(i + 1); ok {
					selector := tok.Text == ":" && next.Kind == token.KindIdentifier
					if selector {
						after, ok := f.TokenAt(i + 2)
						selector = ok && after.Kind == token.KindSymbol && after.Text == ":"
					}
					if !next.IsWhitespaceOrLinebreak() && !next.IsEndOfScope() && !selector {
						f.InsertAt(i+1, token.Whitespace(" "))
					}
				}
				if n := len(scopes); tok.Text == ":" && n > 0 &&
					scopes[n-1].Kind == token.KindSymbol && scopes[n-1].Text == "?" {
					// closes a ternary scope; wants a space before
					scopes = scopes[:n-1]
					if prev, ok := f.TokenAt(i - 1); ok && !prev.IsWhitespaceOrLinebreak() {
						f.InsertAt(i, token.Whitespace(" "))
						i++
					}
				} else if prev, ok := f.TokenAt(i - 1); ok && prev.IsWhitespace() {
					if before, ok := f.TokenAt(i - 2); ok && !before.IsLinebreak() {
						f.RemoveAt(i - 1)
						i--
					}
				}
			case "?":
				prev, okPrev := f.TokenAt(i - 1)
				next, okNext := f.TokenAt(i + 1)
				if okPrev && okNext && prev.IsWhitespaceOrLinebreak() && next.IsWhitespaceOrLinebreak() {
					scopes = append(scopes, tok)
				} else if okPrev && prev.Kind == token.KindKeyword &&
					(prev.Text == "as" || prev.Text == "try") {
					if okNext && !next.IsWhitespaceOrLinebreak() {
						f.InsertAt(i+1, token.Whitespace(" "))
					}
				}
			case "!":
				if prev, ok := f.TokenAt(i - 1); ok && prev.Kind == token.KindKeyword &&
					(prev.Text == "as" || prev.Text == "try") {
					if next, ok := f.TokenAt(i + 1); ok && !next.IsWhitespaceOrLinebreak() {
						f.InsertAt(i+1, token.Whitespace(" "))
					}
				}
			case ".":
				if next, ok := f.TokenAt(i + 1); ok && next.IsWhitespace() {
					f.RemoveAt(i + 1)
				}
				prev, ok := f.TokenAt(i - 1)
				if !ok {
					break
				}
				prevWasWhitespace := prev.IsWhitespace()
				pi := i - 1
				if prevWasWhitespace {
					pi = i - 2
				}
				before, ok := f.TokenAt(pi)
				if !ok {
					break
				}
				attachedUnwrap := isUnwrapSequence(before)
				if attachedUnwrap {
					if w, ok := f.TokenAt(pi - 1); ok && w.IsWhitespaceOrLinebreak() {
						attachedUnwrap = false
					}
				}
				switch {
				case before.IsLinebreak(), before.Kind == token.KindStartOfScope:
					// leading dot on a wrapped line, or directly inside a scope
				case before.Kind == token.KindEndOfScope &&
					(before.Text == "case" || before.Text == "default"):
					if !prevWasWhitespace {
						f.InsertAt(i, token.Whitespace(" "))
						i++
					}
				case before.Kind == token.KindSymbol && !attachedUnwrap:
					if !prevWasWhitespace {
						f.InsertAt(i, token.Whitespace(" "))
						i++
					}
				case before.IsIdentifierOrKeyword() && spaceAfterKeyword(before.Text) &&
					before.Kind == token.KindKeyword:
					if !prevWasWhitespace {
						f.InsertAt(i, token.Whitespace(" "))
						i++
					}
				default:
					if prevWasWhitespace {
						f.RemoveAt(i - 1)
						i--
					}
				}
			case "->":
				if next, ok := f.TokenAt(i + 1); ok && !next.IsWhitespaceOrLinebreak() {
					f.InsertAt(i+1, token.Whitespace(" "))
				}
				if prev, ok := f.TokenAt(i - 1); ok && !prev.IsWhitespaceOrLinebreak() {
					f.InsertAt(i, token.Whitespace(" "))
					i++
				}
			case "...", "..<":
				// the ranges rule owns these
			default:
				prev, okPrev := f.TokenAt(i - 1)
				next, okNext := f.TokenAt(i + 1)
				if okPrev && okNext && isLvalue(prev) && isRvalue(next) {
					f.InsertAt(i+1, token.Whitespace(" "))
					f.InsertAt(i, token.Whitespace(" "))
					i++
				}
			}
		}
	}
}

// isUnwrapSequence reports whether the token is a symbol consisting solely
// of ? and ! characters.
func isUnwrapSequence(t token.Token) bool {
	if t.Kind != token.KindSymbol || t.Text == "" {
		return false
	}
	for _, c := range t.Text {
		if c != '?' && c != '!' {
			return false
		}
	}
	return true
}
