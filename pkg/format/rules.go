package format

import "github.com/yaklabco/swiftfmt/pkg/token"

// builtinRules returns the built-in rules in pipeline order: normalization
// first, then structural edits, then spacing, then indentation, then
// vertical whitespace, then header stripping.
func builtinRules() []Rule {
	return []Rule{
		{"linebreaks", "Normalize line breaks to the configured sequence", ruleLinebreaks},
		{"semicolons", "Remove redundant semicolons", ruleSemicolons},
		{"specifiers", "Order declaration specifiers canonically", ruleSpecifiers},
		{"redundantParens", "Remove parentheses around conditions", ruleRedundantParens},
		{"void", "Normalize Void and () in type positions", ruleVoid},
		{"braces", "Position opening braces per brace style", ruleBraces},
		{"ranges", "Normalize spacing around range operators", ruleRanges},
		{"trailingCommas", "Normalize trailing commas in multi-line literals", ruleTrailingCommas},
		{"elseOnSameLine", "Position else and catch relative to the closing brace", ruleElseOnSameLine},
		{"spaceAroundParens", "Normalize spacing outside parentheses", ruleSpaceAroundParens},
		{"spaceInsideParens", "Remove padding inside parentheses", ruleSpaceInsideParens},
		{"spaceAroundBrackets", "Normalize spacing outside brackets", ruleSpaceAroundBrackets},
		{"spaceInsideBrackets", "Remove padding inside brackets", ruleSpaceInsideBrackets},
		{"spaceAroundBraces", "Normalize spacing outside braces", ruleSpaceAroundBraces},
		{"spaceInsideBraces", "Pad inline brace bodies with single spaces", ruleSpaceInsideBraces},
		{"spaceAroundGenerics", "Remove spacing before generic parameter lists", ruleSpaceAroundGenerics},
		{"spaceInsideGenerics", "Remove padding inside generic parameter lists", ruleSpaceInsideGenerics},
		{"spaceAroundOperators", "Normalize spacing around operators", ruleSpaceAroundOperators},
		{"spaceAroundComments", "Separate comments from adjacent code", ruleSpaceAroundComments},
		{"spaceInsideComments", "Pad comment delimiters with a space", ruleSpaceInsideComments},
		{"consecutiveSpaces", "Collapse runs of spaces", ruleConsecutiveSpaces},
		{"todos", "Normalize TODO, MARK, and FIXME tags", ruleTodos},
		{"indent", "Re-indent every line from scope structure", ruleIndent},
		{"blankLinesAtEndOfScope", "Remove blank lines before a closing bracket", ruleBlankLinesAtEndOfScope},
		{"blankLinesBetweenScopes", "Insert blank lines after type bodies", ruleBlankLinesBetweenScopes},
		{"consecutiveBlankLines", "Collapse consecutive blank lines", ruleConsecutiveBlankLines},
		{"trailingWhitespace", "Remove trailing whitespace from lines", ruleTrailingWhitespace},
		{"linebreakAtEndOfFile", "Ensure the file ends with a line break", ruleLinebreakAtEndOfFile},
		{"stripHeader", "Remove the leading comment header", ruleStripHeader},
	}
}

// matchingCloserIndex returns the index of the closer matching the opener at
// openIndex, walking forward with a balance counter, or -1.
func matchingCloserIndex(f *Formatter, openIndex int) int {
	open := f.tokens[openIndex]
	depth := 0
	for i := openIndex + 1; i < len(f.tokens); i++ {
		t := f.tokens[i]
		if t.Kind == token.KindStartOfScope && t.Text == open.Text {
			depth++
		} else if t.ClosesScope(open) {
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// matchingOpenerIndex returns the index of the opener matching the closer at
// closeIndex, walking backward with a balance counter, or -1.
func matchingOpenerIndex(f *Formatter, closeIndex int) int {
	close := f.tokens[closeIndex]
	var openText string
	switch close.Text {
	case ")":
		openText = "("
	case "]":
		openText = "["
	case "}":
		openText = "{"
	case ">":
		openText = "<"
	case "*/":
		openText = "/*"
	default:
		return -1
	}
	depth := 0
	for i := closeIndex - 1; i >= 0; i-- {
		t := f.tokens[i]
		if t.Kind == token.KindEndOfScope && t.Text == close.Text {
			depth++
		} else if t.Kind == token.KindStartOfScope && t.Text == openText {
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// isCaptureList reports whether the closing ] at index i ends a closure
// capture list: the matching [ directly follows a {.
func isCaptureList(f *Formatter, i int) bool {
	open := matchingOpenerIndex(f, i)
	if open < 0 {
		return false
	}
	p := f.PreviousNonWhitespaceOrCommentOrLinebreak(open)
	if p < 0 {
		return false
	}
	t := f.tokens[p]
	return t.Kind == token.KindStartOfScope && t.Text == "{"
}

// isAttributeArgumentsEnd reports whether the closing ) at index i ends the
// argument list of an attribute: the matching ( directly follows an
// @-prefixed keyword or identifier.
func isAttributeArgumentsEnd(f *Formatter, i int) bool {
	open := matchingOpenerIndex(f, i)
	if open < 0 {
		return false
	}
	p := f.PreviousNonWhitespaceOrCommentOrLinebreak(open)
	if p < 0 {
		return false
	}
	t := f.tokens[p]
	return t.IsIdentifierOrKeyword() && t.HasPrefix("@")
}
