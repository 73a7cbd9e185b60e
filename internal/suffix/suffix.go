// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package suffix builds the candidate keys for a key with optional lookup suffixes.
package suffix

import "strings"

// Candidates returns the keys to try for base with the given suffixes, most specific first.
//
// Every suffix is either present (1) or absent (0), with the first suffix as the most significant bit.
// The candidates are produced by a binary count down from all suffixes present to none,
// and the present suffixes are appended to base in their declared order.
// For suffixes [a, b] the candidates are base.a.b, base.a, base.b and base.
func Candidates(base string, suffixes []string) []string {
	count := len(suffixes)
	candidates := make([]string, 0, 1<<count)
	for mask := 1<<count - 1; mask >= 0; mask-- {
		var builder strings.Builder
		builder.WriteString(base)
		for i, suffix := range suffixes {
			if mask&(1<<(count-1-i)) != 0 {
				builder.WriteString(delimiter)
				builder.WriteString(suffix)
			}
		}
		candidates = append(candidates, builder.String())
	}

	return candidates
}

const delimiter = "."
