package lexer

import (
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/token"
)

// Untokenize serializes a token sequence back to source text by
// concatenating token payloads.
func Untokenize(tokens []token.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
