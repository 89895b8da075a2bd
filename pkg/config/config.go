// Package config defines core configuration types for swiftfmt. These types
// are pure data structures; loading and discovery live in the configloader.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/swiftfmt/pkg/format"
)

// LinebreakStyle names a canonical line-ending sequence.
type LinebreakStyle string

const (
	LinebreakLF   LinebreakStyle = "lf"
	LinebreakCRLF LinebreakStyle = "crlf"
	LinebreakCR   LinebreakStyle = "cr"
)

// Sequence returns the character sequence for the style.
func (s LinebreakStyle) Sequence() string {
	switch s {
	case LinebreakCRLF:
		return "\r\n"
	case LinebreakCR:
		return "\r"
	default:
		return "\n"
	}
}

// IsValid reports whether the style is one of the supported values.
func (s LinebreakStyle) IsValid() bool {
	switch s {
	case LinebreakLF, LinebreakCRLF, LinebreakCR:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for swiftfmt.
type Config struct {
	// Indent is the indentation unit: a positive space count, or "tab".
	Indent string `yaml:"indent"`

	// Linebreak selects the canonical line ending: lf, crlf, or cr.
	Linebreak LinebreakStyle `yaml:"linebreak"`

	// AllmanBraces puts opening braces on their own line.
	AllmanBraces bool `yaml:"allman_braces"`

	// SpaceAroundRanges pads ... and ..< with spaces.
	SpaceAroundRanges bool `yaml:"space_around_ranges"`

	// UseVoid prefers Void over () in return positions.
	UseVoid bool `yaml:"use_void"`

	// TrailingCommas enforces trailing commas in multi-line literals.
	TrailingCommas bool `yaml:"trailing_commas"`

	// IndentComments re-indents comment bodies with the code.
	IndentComments bool `yaml:"indent_comments"`

	// TruncateBlankLines leaves blank lines empty rather than indented.
	TruncateBlankLines bool `yaml:"truncate_blank_lines"`

	// RemoveBlankLines drops blank lines at the end of a scope.
	RemoveBlankLines bool `yaml:"remove_blank_lines"`

	// InsertBlankLines separates type bodies with blank lines.
	InsertBlankLines bool `yaml:"insert_blank_lines"`

	// AllowInlineSemicolons keeps semicolons between inline statements.
	AllowInlineSemicolons bool `yaml:"allow_inline_semicolons"`

	// StripHeader removes the leading comment header from each file.
	StripHeader bool `yaml:"strip_header"`

	// Rules selects a subset of rules by name; empty means all.
	Rules []string `yaml:"rules"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options, not persisted to config files.

	// DryRun shows diffs without writing files.
	DryRun bool `yaml:"-"`

	// Fragment treats the input as a code fragment.
	Fragment bool `yaml:"-"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with default formatting options.
func NewConfig() *Config {
	return &Config{
		Indent:                "4",
		Linebreak:             LinebreakLF,
		SpaceAroundRanges:     true,
		UseVoid:               true,
		TrailingCommas:        true,
		IndentComments:        true,
		TruncateBlankLines:    true,
		RemoveBlankLines:      true,
		InsertBlankLines:      true,
		AllowInlineSemicolons: true,
	}
}

// IndentString resolves the Indent field to the literal indent unit.
func (c *Config) IndentString() (string, error) {
	if c.Indent == "tab" {
		return "\t", nil
	}
	n := 0
	for _, r := range c.Indent {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid indent %q: want a space count or \"tab\"", c.Indent)
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 || n > 16 {
		return "", fmt.Errorf("invalid indent %q: space count must be 1-16", c.Indent)
	}
	return strings.Repeat(" ", n), nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.IndentString(); err != nil {
		errs = append(errs, err)
	}
	if !c.Linebreak.IsValid() {
		errs = append(errs, fmt.Errorf("invalid linebreak %q: want lf, crlf, or cr", c.Linebreak))
	}
	for _, name := range c.Rules {
		if _, ok := format.DefaultRegistry.Get(name); !ok {
			errs = append(errs, fmt.Errorf("unknown rule %q", name))
		}
	}
	return errors.Join(errs...)
}

// FormatOptions maps the configuration to the options the rules consume.
func (c *Config) FormatOptions() (format.Options, error) {
	indent, err := c.IndentString()
	if err != nil {
		return format.Options{}, err
	}
	opts := format.DefaultOptions()
	opts.Indent = indent
	opts.Linebreak = c.Linebreak.Sequence()
	opts.SpaceAroundRangeOperators = c.SpaceAroundRanges
	opts.UseVoid = c.UseVoid
	opts.TrailingCommas = c.TrailingCommas
	opts.IndentComments = c.IndentComments
	opts.TruncateBlankLines = c.TruncateBlankLines
	opts.AllmanBraces = c.AllmanBraces
	opts.RemoveBlankLines = c.RemoveBlankLines
	opts.InsertBlankLines = c.InsertBlankLines
	opts.AllowInlineSemicolons = c.AllowInlineSemicolons
	opts.StripHeader = c.StripHeader
	opts.Fragment = c.Fragment
	return opts, nil
}

// RuleNames returns the selected rule names, or every registered rule when
// no subset is configured.
func (c *Config) RuleNames() []string {
	if len(c.Rules) > 0 {
		return c.Rules
	}
	return format.DefaultRegistry.Names()
}
