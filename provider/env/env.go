// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package env resolves configuration from environment variables.
//
// A key is looked up by the exact name first, then with every character
// that is not a letter, digit or `_` replaced by `_`, and last in upper case of the latter.
// E.g. the key `server.port` is resolved by `server.port`, `server_port` or `SERVER_PORT`.
// The environment variables with empty value are treated as unset.
//
// The default behavior can be changed with following options:
//   - WithPrefix prepends the prefix to the key when looking up, and limits the listed variables.
//   - WithOrdinal overrides the default ordinal 300.
package env

import (
	"os"
	"strings"
)

// Env is a Source that resolves configuration from environment variables.
//
// To create a new Env, call [New].
type Env struct {
	_       [0]func() // Ensure it's incomparable.
	prefix  string
	ordinal int
}

// New creates an Env with the given Option(s).
func New(opts ...Option) Env {
	option := &options{ordinal: defaultOrdinal}
	for _, opt := range opts {
		opt(option)
	}

	return Env(*option)
}

func (e Env) Name() string {
	if e.prefix == "" {
		return "env"
	}

	return "env:" + e.prefix
}

func (e Env) Ordinal() int {
	return e.ordinal
}

func (e Env) Lookup(key string) (string, bool, error) {
	for _, name := range names(e.prefix + key) {
		// The environment variable with empty value is treated as unset.
		if value, ok := os.LookupEnv(name); ok && value != "" {
			return value, true, nil
		}
	}

	return "", false, nil
}

func (e Env) Properties() (map[string]string, error) {
	values := make(map[string]string)
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, e.prefix) {
			continue
		}
		key, value, _ := strings.Cut(strings.TrimPrefix(env, e.prefix), "=")
		if key == "" || value == "" {
			continue
		}
		values[key] = value
	}

	return values, nil
}

func names(key string) []string {
	sanitized := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			return r
		}

		return '_'
	}, key)
	upper := strings.ToUpper(sanitized)

	names := []string{key}
	if sanitized != key {
		names = append(names, sanitized)
	}
	if upper != sanitized {
		names = append(names, upper)
	}

	return names
}

const defaultOrdinal = 300
