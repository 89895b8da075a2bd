package format

import (
	"fmt"

	"github.com/yaklabco/swiftfmt/pkg/token"
)

// Apply runs the given rules, in the order given, over a copy of tokens and
// returns the transformed sequence. A panicking rule is recovered and
// surfaced as an error; the input is never partially returned.
func Apply(tokens []token.Token, rules []Rule, options Options) (result []token.Token, err error) {
	f := NewFormatter(tokens, options)
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("formatting failed: %v", r)
		}
	}()
	for _, rule := range rules {
		rule.Apply(f)
	}
	return f.Tokens(), nil
}

// ApplyAll runs the full built-in pipeline over tokens.
func ApplyAll(tokens []token.Token, options Options) ([]token.Token, error) {
	return Apply(tokens, DefaultRegistry.Rules(), options)
}

// ApplyNamed runs the named subset of built-in rules, in pipeline order.
func ApplyNamed(tokens []token.Token, names []string, options Options) ([]token.Token, error) {
	rules, err := DefaultRegistry.Select(names)
	if err != nil {
		return nil, err
	}
	return Apply(tokens, rules, options)
}
