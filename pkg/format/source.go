package format

import "github.com/yaklabco/swiftfmt/pkg/lexer"

// Source formats source text with the named rules, or the full built-in
// pipeline when names is nil.
func Source(src string, names []string, options Options) (string, error) {
	tokens := lexer.Tokenize(src)
	var err error
	if names == nil {
		tokens, err = ApplyAll(tokens, options)
	} else {
		tokens, err = ApplyNamed(tokens, names, options)
	}
	if err != nil {
		return "", err
	}
	return lexer.Untokenize(tokens), nil
}
