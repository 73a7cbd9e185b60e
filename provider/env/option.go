// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package env

// WithPrefix provides the prefix of environment variable names.
//
// For example, with the prefix "APP_", the key `server.port` is resolved by `APP_SERVER_PORT`,
// and only environment variables whose names start with "APP_" are listed, without the prefix.
// By default, it has no prefix.
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

// WithOrdinal provides the ordinal of the Env.
//
// The default ordinal is 300.
func WithOrdinal(ordinal int) Option {
	return func(options *options) {
		options.ordinal = ordinal
	}
}

type (
	// Option configures an Env with specific options.
	Option  func(*options)
	options Env
)
