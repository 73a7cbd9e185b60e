// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package memory

// WithName provides the name of the Memory.
//
// The default name is "memory".
func WithName(name string) Option {
	return func(options *options) {
		options.name = name
	}
}

// WithOrdinal provides the ordinal of the Memory.
//
// The default ordinal is 400.
func WithOrdinal(ordinal int) Option {
	return func(options *options) {
		options.ordinal = ordinal
	}
}

// WithValues provides the initial properties.
func WithValues(values map[string]string) Option {
	return func(options *options) {
		options.values = values
	}
}

type (
	// Option configures a Memory with specific options.
	Option  func(*options)
	options struct {
		name    string
		ordinal int
		values  map[string]string
	}
)
