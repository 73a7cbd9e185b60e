// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package flag

import "flag"

// WithPrefix enables only resolving flags with the given prefix in the name.
//
// E.g. if the given prefix is "server", it only resolves flags
// which name starts with "server".
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

// WithFlagSet provides the [flag.FlagSet] that resolves configuration from.
//
// The default flag set is [flag.CommandLine].
func WithFlagSet(set *flag.FlagSet) Option {
	return func(options *options) {
		options.set = set
	}
}

// WithDefaults also resolves flags that are not set in the command line
// if their default value is not the zero value.
func WithDefaults() Option {
	return func(options *options) {
		options.defaults = true
	}
}

// WithOrdinal provides the ordinal of the Flag.
//
// The default ordinal is 500.
func WithOrdinal(ordinal int) Option {
	return func(options *options) {
		options.ordinal = ordinal
	}
}

// Option configures the give Flag.
type Option func(*options)

type options Flag
