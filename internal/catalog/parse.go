// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"bufio"
	"bytes"
	"strings"
)

const (
	// FormatAuto selects the grammar by sniffing the input.
	FormatAuto Format = "auto"
	// FormatLine is the colon-delimited line grammar.
	FormatLine Format = "line"
	// FormatYAML is the structured YAML grammar.
	FormatYAML Format = "yaml"
)

// Format identifies a catalog source grammar.
type Format string

// IsValid reports whether the Format is one of the known values.
func (f Format) IsValid() bool {
	switch f {
	case FormatAuto, FormatLine, FormatYAML:
		return true
	}
	return false
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Parse turns raw catalog text into a Catalog, dispatching on format.
// FormatAuto sniffs the grammar first. The parse is total-or-nothing:
// any malformed record surfaces a single error and no catalog.
func Parse(data []byte, format Format) (*Catalog, error) {
	if format == FormatAuto || format == "" {
		format = Sniff(data)
	}

	switch format {
	case FormatLine:
		return parseLines(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, ErrUnknownFormat
	}
}

// Sniff guesses the grammar of raw catalog text. YAML documents open with
// a "categories:" mapping (possibly after comments or a version header);
// everything else is treated as the line grammar.
func Sniff(data []byte) Format {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "categories:") || strings.HasPrefix(line, "---") {
			return FormatYAML
		}
		// Top-level YAML scalars like `version: "1.0"` have exactly one
		// colon-separated key; delimited catalog lines have at least three.
		if key, _, found := strings.Cut(line, ":"); found && strings.Count(line, ":") < 3 && !strings.Contains(key, " ") {
			return FormatYAML
		}
		return FormatLine
	}
	return FormatLine
}

// displayName derives a human-readable category name from its identifier:
// underscores become spaces and each word is capitalized.
func displayName(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
