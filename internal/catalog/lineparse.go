// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// lineFieldCount is the number of colon-delimited fields per record:
// category, tool name, description, command.
const lineFieldCount = 4

// parseLines parses the colon-delimited grammar:
//
//	category:tool name:description:install command
//
// Blank lines and #-comments are skipped. Only the first three separators
// split; the command field keeps any further colons. Categories and tools
// appear in encounter order, and duplicate tool entries are preserved.
func parseLines(data []byte) (*Catalog, error) {
	var (
		order      []string
		categories = make(map[string]*Category)
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, ":", lineFieldCount)
		if len(fields) < lineFieldCount {
			return nil, &ParseError{
				Format: FormatLine,
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d colon-delimited fields, got %d", lineFieldCount, len(fields)),
			}
		}

		id := strings.TrimSpace(fields[0])
		tool := Tool{
			Name:        strings.TrimSpace(fields[1]),
			Description: strings.TrimSpace(fields[2]),
			Command:     strings.TrimSpace(fields[3]),
		}

		if id == "" {
			return nil, &ParseError{Format: FormatLine, Line: lineNo, Reason: "empty category field"}
		}
		if tool.Name == "" {
			return nil, &ParseError{Format: FormatLine, Line: lineNo, Reason: "empty tool name field"}
		}
		if tool.Command == "" {
			return nil, &ParseError{Format: FormatLine, Line: lineNo, Reason: "empty command field"}
		}

		cat, ok := categories[id]
		if !ok {
			cat = &Category{
				ID:   id,
				Name: displayName(id),
				// Encounter order doubles as the display rank so the menu
				// mirrors the file.
				Order: len(order) + 1,
			}
			categories[id] = cat
			order = append(order, id)
		}
		cat.Tools = append(cat.Tools, tool)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Format: FormatLine, Reason: "reading input", Cause: err}
	}

	if len(order) == 0 {
		return nil, ErrEmptyCatalog
	}

	cats := make([]*Category, 0, len(order))
	for _, id := range order {
		cats = append(cats, categories[id])
	}
	return New(cats), nil
}
