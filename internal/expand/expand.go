// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package expand replaces ${key} references in configuration values.
package expand

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Lookup returns the raw value of the given key, and whether it is defined.
type Lookup func(key string) (string, bool, error)

// Expand replaces every ${key} in the value of key with the expanded value of the referenced key.
// References to undefined keys and unterminated references are kept as they are.
// It fails with ErrCycle if a key references itself directly or through other keys.
func Expand(key, value string, lookup Lookup) (string, error) {
	return expand(value, []string{key}, lookup)
}

func expand(value string, chain []string, lookup Lookup) (string, error) {
	if !strings.Contains(value, prefix) {
		return value, nil
	}

	var builder strings.Builder
	for {
		start := strings.Index(value, prefix)
		if start < 0 {
			break
		}
		end := strings.Index(value[start+len(prefix):], suffix)
		if end < 0 {
			break
		}
		end += start + len(prefix)

		builder.WriteString(value[:start])
		name := value[start+len(prefix) : end]
		replacement, err := resolve(name, chain, lookup)
		if err != nil {
			return "", err
		}
		if replacement == nil {
			builder.WriteString(value[start : end+len(suffix)])
		} else {
			builder.WriteString(*replacement)
		}
		value = value[end+len(suffix):]
	}
	builder.WriteString(value)

	return builder.String(), nil
}

func resolve(name string, chain []string, lookup Lookup) (*string, error) {
	if name == "" {
		return nil, nil //nolint:nilnil
	}
	if slices.Contains(chain, name) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(chain, " -> "), name)
	}

	raw, ok, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil //nolint:nilnil
	}

	expanded, err := expand(raw, append(slices.Clone(chain), name), lookup)
	if err != nil {
		return nil, err
	}

	return &expanded, nil
}

const (
	prefix = "${"
	suffix = "}"
)

// ErrCycle is returned when variable references form a cycle.
var ErrCycle = errors.New("variable reference cycle")
