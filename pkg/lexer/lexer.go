// Package lexer converts source text into the token sequence consumed by
// the formatter, and serializes token sequences back to text. A round trip
// with no rules applied reproduces the input byte-for-byte.
package lexer

import "github.com/yaklabco/swiftfmt/pkg/token"

// keywords is the reserved-word set, including contextual declaration
// modifiers so the specifier rules can match them.
var keywords = map[string]bool{
	"as": true, "associatedtype": true, "break": true, "case": true,
	"catch": true, "class": true, "continue": true, "convenience": true,
	"default": true, "defer": true, "deinit": true, "didSet": true,
	"do": true, "dynamic": true, "else": true, "enum": true,
	"extension": true, "fallthrough": true, "fileprivate": true,
	"final": true, "for": true, "func": true, "get": true, "guard": true,
	"if": true, "import": true, "in": true, "indirect": true,
	"infix": true, "init": true, "inout": true, "internal": true,
	"is": true, "lazy": true, "let": true, "mutating": true, "nil": true,
	"nonmutating": true, "open": true, "operator": true, "optional": true,
	"override": true, "postfix": true, "prefix": true, "private": true,
	"protocol": true, "public": true, "repeat": true, "required": true,
	"rethrows": true, "return": true, "set": true, "static": true,
	"struct": true, "subscript": true, "super": true, "switch": true,
	"throw": true, "throws": true, "try": true, "typealias": true,
	"unowned": true, "var": true, "weak": true, "where": true,
	"while": true, "willSet": true,
}

const operatorChars = "/=-+!*%<>&|^~?"

type braceInfo struct {
	isSwitch bool
}

type lexer struct {
	src    []rune
	pos    int
	tokens []token.Token

	// brackets tracks open ( [ { < for balance checking.
	brackets []rune
	braces   []braceInfo

	// pendingSwitch marks a switch keyword whose body brace has not yet
	// opened; pendingSwitchDepth pins it to the bracket depth it was seen
	// at, so braces inside the subject expression don't consume it.
	pendingSwitch      bool
	pendingSwitchDepth int

	// stmtKeyword is the last control keyword seen since the last
	// statement boundary; it disambiguates `if case` from a switch case.
	stmtKeyword string

	// lastSignificant is the text of the last emitted token that was not
	// whitespace, a line break, or part of a comment.
	lastSignificant string
}

// Tokenize converts source text to tokens.
func Tokenize(src string) []token.Token {
	l := &lexer{src: []rune(src)}
	for l.pos < len(l.src) {
		l.next()
	}
	return l.tokens
}

func (l *lexer) emit(t token.Token) {
	l.tokens = append(l.tokens, t)
	switch t.Kind {
	case token.KindWhitespace, token.KindCommentBody:
	case token.KindLinebreak:
		l.stmtKeyword = ""
	default:
		if t.IsComment() {
			return
		}
		l.lastSignificant = t.Text
	}
}

func (l *lexer) peek(offset int) rune {
	if p := l.pos + offset; p < len(l.src) {
		return l.src[p]
	}
	return 0
}

func (l *lexer) next() {
	c := l.src[l.pos]
	switch {
	case c == ' ' || c == '\t':
		l.lexWhitespace()
	case c == '\n' || c == '\r':
		l.lexLinebreak()
	case c == '/' && l.peek(1) == '/':
		l.lexLineComment()
	case c == '/' && l.peek(1) == '*':
		l.lexBlockComment()
	case c == '"':
		l.lexString()
	case c >= '0' && c <= '9':
		l.lexNumber()
	case isIdentifierStart(c):
		l.lexIdentifier()
	case c == '(' || c == '[' || c == '{':
		l.lexOpenBracket(c)
	case c == ')' || c == ']' || c == '}':
		l.lexCloseBracket(c)
	case c == ':' || c == ',' || c == ';':
		l.pos++
		l.resetStatement(c)
		l.emit(token.Symbol(string(c)))
	case c == '.':
		l.lexDot()
	case c == '<' && l.isGenericStart():
		l.pos++
		l.brackets = append(l.brackets, '<')
		l.emit(token.StartOfScope("<"))
	case c == '>' && l.topBracket() == '<':
		l.pos++
		l.brackets = l.brackets[:len(l.brackets)-1]
		l.emit(token.EndOfScope(">"))
	case isOperatorChar(c):
		l.lexOperator()
	default:
		// an unclassifiable character surfaces as an error token
		l.pos++
		l.emit(token.Error(string(c)))
	}
}

func (l *lexer) resetStatement(c rune) {
	if c == ';' || c == ':' {
		l.stmtKeyword = ""
	}
}

func (l *lexer) lexWhitespace() {
	start := l.pos
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
	l.emit(token.Whitespace(string(l.src[start:l.pos])))
}

func (l *lexer) lexLinebreak() {
	if l.src[l.pos] == '\r' && l.peek(1) == '\n' {
		l.pos += 2
		l.emit(token.Linebreak("\r\n"))
		return
	}
	text := string(l.src[l.pos])
	l.pos++
	l.emit(token.Linebreak(text))
}

// lexLineComment consumes // and the rest of the line, splitting leading
// and trailing whitespace into their own tokens so the whitespace rules
// can normalize them.
func (l *lexer) lexLineComment() {
	l.pos += 2
	l.emit(token.StartOfScope("//"))
	l.lexCommentLine()
}

func (l *lexer) lexBlockComment() {
	l.pos += 2
	l.emit(token.StartOfScope("/*"))
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n' || c == '\r':
			l.lexLinebreak()
		case c == ' ' || c == '\t':
			l.lexWhitespace()
		case c == '*' && l.peek(1) == '/':
			depth--
			l.pos += 2
			l.emit(token.EndOfScope("*/"))
			if depth == 0 {
				return
			}
		case c == '/' && l.peek(1) == '*':
			depth++
			l.pos += 2
			l.emit(token.StartOfScope("/*"))
		default:
			l.lexCommentBody(depth)
		}
	}
}

// lexCommentBody consumes comment text up to a line break, nested comment
// delimiter, or leading/trailing whitespace boundary.
func (l *lexer) lexCommentBody(depth int) {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '*' && l.peek(1) == '/' {
			break
		}
		if c == '/' && l.peek(1) == '*' {
			break
		}
		l.pos++
	}
	text := string(l.src[start:l.pos])
	body, trailing := splitTrailingWhitespace(text)
	if body != "" {
		l.emit(token.CommentBody(body))
	}
	if trailing != "" {
		l.emit(token.Whitespace(trailing))
	}
}

// lexCommentLine consumes a single-line comment tail: optional leading
// whitespace, body, optional trailing whitespace.
func (l *lexer) lexCommentLine() {
	if l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.lexWhitespace()
	}
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	body, trailing := splitTrailingWhitespace(text)
	if body != "" {
		l.emit(token.CommentBody(body))
	}
	if trailing != "" {
		l.emit(token.Whitespace(trailing))
	}
}

func splitTrailingWhitespace(s string) (body, trailing string) {
	i := len(s)
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	return s[:i], s[i:]
}

// lexString consumes a string literal, including escapes and interpolation
// segments, as a single body token between quote scopes. An unterminated
// string ends at the line break, which serves as its closer.
func (l *lexer) lexString() {
	l.pos++
	l.emit(token.StartOfScope("\""))
	start := l.pos
	parens := 0
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' || c == '\r' {
			break
		}
		if c == '\\' {
			if l.peek(1) == '(' {
				parens++
			}
			l.pos += 2
			if l.pos > len(l.src) {
				l.pos = len(l.src)
			}
			continue
		}
		if parens > 0 {
			if c == '(' {
				parens++
			} else if c == ')' {
				parens--
			}
			l.pos++
			continue
		}
		if c == '"' {
			break
		}
		l.pos++
	}
	if l.pos > start {
		l.emit(token.StringBody(string(l.src[start:l.pos])))
	}
	if l.pos < len(l.src) && l.src[l.pos] == '"' {
		l.pos++
		l.emit(token.EndOfScope("\""))
	}
}

func (l *lexer) lexNumber() {
	start := l.pos
	if l.src[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		l.pos += 2
		l.consumeDigits(isHexDigit)
		if l.pos < len(l.src) && l.src[l.pos] == '.' && isHexDigit(l.peek(1)) {
			l.pos++
			l.consumeDigits(isHexDigit)
		}
		if l.pos < len(l.src) && (l.src[l.pos] == 'p' || l.src[l.pos] == 'P') {
			l.consumeExponent()
		}
		l.emit(token.Number(string(l.src[start:l.pos])))
		return
	}
	if l.src[l.pos] == '0' && (l.peek(1) == 'b' || l.peek(1) == 'o') {
		l.pos += 2
		l.consumeDigits(isDecimalDigit)
		l.emit(token.Number(string(l.src[start:l.pos])))
		return
	}
	l.consumeDigits(isDecimalDigit)
	if l.pos < len(l.src) && l.src[l.pos] == '.' && isDecimalDigit(l.peek(1)) {
		l.pos++
		l.consumeDigits(isDecimalDigit)
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.consumeExponent()
	}
	l.emit(token.Number(string(l.src[start:l.pos])))
}

func (l *lexer) consumeDigits(valid func(rune) bool) {
	for l.pos < len(l.src) && (valid(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
}

func (l *lexer) consumeExponent() {
	l.pos++
	if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
		l.pos++
	}
	l.consumeDigits(isDecimalDigit)
}

func isDecimalDigit(c rune) bool { return c >= '0' && c <= '9' }

func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentifierStart(c rune) bool {
	return c == '_' || c == '@' || c == '#' || c == '$' || c == '`' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierChar(c rune) bool {
	return c == '_' || isDecimalDigit(c) ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isOperatorChar(c rune) bool {
	for _, o := range operatorChars {
		if c == o {
			return true
		}
	}
	return false
}

func (l *lexer) lexIdentifier() {
	start := l.pos
	c := l.src[l.pos]
	if c == '`' {
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] != '`' && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
			l.pos++
		}
		if l.pos < len(l.src) && l.src[l.pos] == '`' {
			l.pos++
		}
		l.emit(token.Identifier(string(l.src[start:l.pos])))
		return
	}
	if c == '@' || c == '#' || c == '$' {
		l.pos++
	}
	for l.pos < len(l.src) && isIdentifierChar(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	l.emitWord(text)
}

func (l *lexer) emitWord(text string) {
	if !keywords[text] || l.lastSignificant == "." {
		l.emit(token.Identifier(text))
		return
	}
	switch text {
	case "case":
		if l.isCaseLabel() {
			l.emit(token.EndOfScope("case"))
			return
		}
	case "default":
		if l.insideSwitchBody() {
			l.emit(token.EndOfScope("default"))
			return
		}
	case "if", "guard", "for", "while", "switch":
		l.stmtKeyword = text
		if text == "switch" {
			l.pendingSwitch = true
			l.pendingSwitchDepth = len(l.brackets)
		}
	}
	l.emit(token.Keyword(text))
}

// isCaseLabel reports whether a case keyword introduces a switch case
// rather than an enum case or an `if case` pattern.
func (l *lexer) isCaseLabel() bool {
	switch l.stmtKeyword {
	case "if", "guard", "for", "while":
		return false
	}
	return l.insideSwitchBody()
}

func (l *lexer) insideSwitchBody() bool {
	if l.topBracket() != '{' {
		return false
	}
	return len(l.braces) > 0 && l.braces[len(l.braces)-1].isSwitch
}

func (l *lexer) topBracket() rune {
	if n := len(l.brackets); n > 0 {
		return l.brackets[n-1]
	}
	return 0
}

func (l *lexer) lexOpenBracket(c rune) {
	l.pos++
	l.brackets = append(l.brackets, c)
	if c == '{' {
		isSwitch := l.pendingSwitch && len(l.brackets)-1 == l.pendingSwitchDepth
		if isSwitch {
			l.pendingSwitch = false
		}
		l.braces = append(l.braces, braceInfo{isSwitch: isSwitch})
		l.stmtKeyword = ""
	}
	l.emit(token.StartOfScope(string(c)))
}

func (l *lexer) lexCloseBracket(c rune) {
	l.pos++
	open := map[rune]rune{')': '(', ']': '[', '}': '{'}[c]
	// a generic scope left open by a misjudged < is abandoned here
	for l.topBracket() == '<' {
		l.brackets = l.brackets[:len(l.brackets)-1]
	}
	if l.topBracket() != open {
		l.emit(token.Error(string(c)))
		return
	}
	l.brackets = l.brackets[:len(l.brackets)-1]
	if c == '}' {
		if len(l.braces) > 0 {
			l.braces = l.braces[:len(l.braces)-1]
		}
		l.stmtKeyword = ""
	}
	l.emit(token.EndOfScope(string(c)))
}

func (l *lexer) lexDot() {
	if l.peek(1) == '.' {
		if l.peek(2) == '.' {
			l.pos += 3
			l.emit(token.Symbol("..."))
			return
		}
		if l.peek(2) == '<' {
			l.pos += 3
			l.emit(token.Symbol("..<"))
			return
		}
	}
	l.pos++
	l.emit(token.Symbol("."))
}

func (l *lexer) lexOperator() {
	start := l.pos
	for l.pos < len(l.src) && isOperatorChar(l.src[l.pos]) {
		c := l.src[l.pos]
		if c == '/' && (l.peek(1) == '/' || l.peek(1) == '*') {
			break
		}
		if c == '>' && l.topBracket() == '<' &&
			!(l.pos > start && l.src[l.pos-1] == '-') {
			// the > closes a generic scope unless it completes ->
			break
		}
		if c == '<' && l.pos > start && l.isGenericStart() {
			break
		}
		l.pos++
	}
	if l.pos == start {
		l.pos++
	}
	l.emit(token.Symbol(string(l.src[start:l.pos])))
}

// isGenericStart decides whether a < at the current position opens a
// generic parameter list, by requiring an adjacent type-ish token before it
// and a balanced > reachable through type-argument syntax only.
func (l *lexer) isGenericStart() bool {
	if len(l.tokens) == 0 {
		return false
	}
	prev := l.tokens[len(l.tokens)-1]
	switch {
	case prev.Kind == token.KindIdentifier:
	case prev.Kind == token.KindKeyword && (prev.Text == "init" || prev.Text == "subscript"):
	default:
		return false
	}
	depth := 1
	parens := 0
	squares := 0
	for i := l.pos + 1; i < len(l.src); i++ {
		c := l.src[i]
		switch {
		case c == '<':
			depth++
		case c == '>':
			if l.src[i-1] == '-' {
				// the > completing a function-type arrow
				continue
			}
			depth--
			if depth == 0 {
				return parens == 0 && squares == 0
			}
		case c == '-':
			// only legal as the start of ->
			if i+1 >= len(l.src) || l.src[i+1] != '>' {
				return false
			}
		case c == '(':
			parens++
		case c == ')':
			if parens == 0 {
				return false
			}
			parens--
		case c == '[':
			squares++
		case c == ']':
			if squares == 0 {
				return false
			}
			squares--
		case c == ' ' || c == '\t' || c == '.' || c == ',' || c == ':' ||
			c == '?' || c == '!' || c == '&':
		case isIdentifierChar(c) || c == '@':
		default:
			return false
		}
	}
	return false
}
