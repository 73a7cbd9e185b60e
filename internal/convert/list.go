// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert

import "strings"

// Split splits raw on unescaped commas.
// A backslash escapes a comma or another backslash; any other escaped byte is kept as is.
// Bytes are copied unchanged, including invalid UTF-8.
// An empty raw string yields no elements.
func Split(raw string) []string {
	if raw == "" {
		return nil
	}

	var (
		parts   []string
		current strings.Builder
		escaped bool
	)
	for i := range len(raw) {
		b := raw[i]
		switch {
		case escaped:
			if b != ',' && b != '\\' {
				current.WriteByte('\\')
			}
			current.WriteByte(b)
			escaped = false
		case b == '\\':
			escaped = true
		case b == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(b)
		}
	}
	if escaped {
		current.WriteByte('\\')
	}

	return append(parts, current.String())
}

// Join is the inverse of Split.
func Join(elements []string) string {
	escaped := make([]string, 0, len(elements))
	for _, element := range elements {
		escaped = append(escaped, escaper.Replace(element))
	}

	return strings.Join(escaped, ",")
}

var escaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`) //nolint:gochecknoglobals
