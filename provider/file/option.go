// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import "log/slog"

// WithUnmarshal provides the function used to parse the configuration file into flat properties.
//
// By default, the format is chosen by the file extension.
func WithUnmarshal(unmarshal func([]byte) (map[string]string, error)) Option {
	return func(options *options) {
		options.unmarshal = unmarshal
	}
}

// IgnoreFileNotExist loads no properties instead of returning an error if the configuration file is not found.
func IgnoreFileNotExist() Option {
	return func(options *options) {
		options.ignoreNotExist = true
	}
}

// WithOrdinal provides the ordinal used if the file does not define `config_ordinal`.
//
// The default ordinal is 100.
func WithOrdinal(ordinal int) Option {
	return func(options *options) {
		options.ordinal = ordinal
	}
}

// WithLogger provides the slog.Logger for File source.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures the a File with specific options.
	Option  func(options *options)
	options struct {
		logger         *slog.Logger
		path           string
		unmarshal      func([]byte) (map[string]string, error)
		ignoreNotExist bool
		ordinal        int
	}
)
