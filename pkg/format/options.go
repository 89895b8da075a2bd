// Package format implements the formatting engine: a mutable token buffer,
// the rule registry, and the built-in formatting rules.
package format

// Options controls the behavior of the formatting rules. The zero value is
// not useful; start from DefaultOptions.
type Options struct {
	// Indent is the string used for one level of indentation, either a
	// run of spaces or a single tab.
	Indent string

	// Linebreak is the canonical line-break sequence: "\n", "\r\n", or "\r".
	Linebreak string

	// SpaceAroundRangeOperators adds spaces around ... and ..< when true,
	// and strips them when false.
	SpaceAroundRangeOperators bool

	// UseVoid prefers Void over () in return-type positions.
	UseVoid bool

	// TrailingCommas enforces a trailing comma on the last element of a
	// multi-line array literal; when false the comma is stripped.
	TrailingCommas bool

	// IndentComments re-indents comment bodies along with the code.
	IndentComments bool

	// TruncateBlankLines leaves blank lines empty instead of indenting them.
	TruncateBlankLines bool

	// AllmanBraces puts opening braces on their own line.
	AllmanBraces bool

	// RemoveBlankLines drops blank lines immediately before a closing
	// bracket that stands on its own line.
	RemoveBlankLines bool

	// InsertBlankLines inserts a blank line after the closing brace of a
	// class, struct, enum, or extension body.
	InsertBlankLines bool

	// AllowInlineSemicolons keeps semicolons that separate statements on
	// one line; when false they are rewritten as line breaks.
	AllowInlineSemicolons bool

	// StripHeader removes the leading // comment block from the file.
	StripHeader bool

	// Fragment marks the input as a code fragment, suppressing whole-file
	// rules (final newline, header strip, trailing blank-line collapse)
	// and deriving the base indent from the input.
	Fragment bool
}

// DefaultOptions returns the default formatting options.
func DefaultOptions() Options {
	return Options{
		Indent:                    "    ",
		Linebreak:                 "\n",
		SpaceAroundRangeOperators: true,
		UseVoid:                   true,
		TrailingCommas:            true,
		IndentComments:            true,
		TruncateBlankLines:        true,
		AllmanBraces:              false,
		RemoveBlankLines:          true,
		InsertBlankLines:          true,
		AllowInlineSemicolons:     true,
		StripHeader:               false,
		Fragment:                  false,
	}
}
