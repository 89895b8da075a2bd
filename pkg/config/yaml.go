package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown fields are an
// error so typos surface at load time.
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// DefaultTemplate is the starter configuration written by `swiftfmt init`.
const DefaultTemplate = `# swiftfmt configuration
# See the rules command for the full rule list.

# Indentation unit: a space count, or "tab".
indent: "4"

# Canonical line ending: lf, crlf, or cr.
linebreak: lf

# Opening braces on their own line (Allman style).
allman_braces: false

# Pad range operators: 0 ..< 5 rather than 0..<5.
space_around_ranges: true

# Prefer Void over () in return positions.
use_void: true

# Enforce trailing commas in multi-line array literals.
trailing_commas: true

# Re-indent comments along with the code.
indent_comments: true

# Leave blank lines empty rather than indented.
truncate_blank_lines: true

# Drop blank lines that precede a closing bracket.
remove_blank_lines: true

# Separate type bodies with a blank line.
insert_blank_lines: true

# Keep semicolons between statements on one line.
allow_inline_semicolons: true

# Remove the leading // comment header from each file.
strip_header: false

# Run a subset of rules; empty means all.
rules: []

# Glob patterns for files to skip.
ignore: []
`
