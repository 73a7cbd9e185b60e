// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package pflag

import "github.com/spf13/pflag"

// WithPrefix enables only resolving flags with the given prefix in the name.
//
// E.g. if the given prefix is "server", it only resolves flags
// which name starts with "server".
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

// WithFlagSet provides the [pflag.FlagSet] that resolves configuration from.
//
// The default flag set is [pflag.CommandLine] plus [flag.CommandLine].
func WithFlagSet(set *pflag.FlagSet) Option {
	return func(options *options) {
		options.set = set
	}
}

// WithDefaults also resolves flags that are not set in the command line with their default values.
func WithDefaults() Option {
	return func(options *options) {
		options.defaults = true
	}
}

// WithOrdinal provides the ordinal of the PFlag.
//
// The default ordinal is 500.
func WithOrdinal(ordinal int) Option {
	return func(options *options) {
		options.ordinal = ordinal
	}
}

// Option configures the give PFlag.
type Option func(*options)

type options PFlag
