// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package fs

// WithUnmarshal provides the function used to parse every configuration file into flat properties.
//
// By default, the format is chosen by the file extension.
func WithUnmarshal(unmarshal func([]byte) (map[string]string, error)) Option {
	return func(options *options) {
		options.unmarshal = unmarshal
	}
}

// WithOrdinal provides the ordinal used by files that do not define `config_ordinal`.
//
// The default ordinal is 100.
func WithOrdinal(ordinal int) Option {
	return func(options *options) {
		options.ordinal = ordinal
	}
}

type (
	// Option configures the a FS with specific options.
	Option  func(file *options)
	options FS
)
