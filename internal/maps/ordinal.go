// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import (
	"strconv"
	"strings"
)

// OrdinalKey is the property a source may define to override its own ordinal.
const OrdinalKey = "config_ordinal"

// Ordinal returns the ordinal declared under OrdinalKey in values,
// or fallback if it is absent or not an integer.
func Ordinal(values map[string]string, fallback int) int {
	raw, ok := values[OrdinalKey]
	if !ok {
		return fallback
	}
	ordinal, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}

	return ordinal
}
