// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import "log/slog"

// WithSource provides the sources that configuration is resolved from.
//
// The order of sources does not matter except for sources with the same ordinal and name,
// where the latter takes precedence.
func WithSource(sources ...Source) Option {
	return func(options *options) {
		options.sources = append(options.sources, sources...)
	}
}

// WithProvider provides the providers that discover sources while creating the Config.
func WithProvider(providers ...Provider) Option {
	return func(options *options) {
		options.providers = append(options.providers, providers...)
	}
}

// WithConverter provides custom converters.
// They take precedence over built-in converters for the same type.
func WithConverter(converters ...Converter) Option {
	return func(options *options) {
		options.converters = append(options.converters, converters...)
	}
}

// WithFilter provides the filters applied to every value in the given order.
func WithFilter(filters ...Filter) Option {
	return func(options *options) {
		options.filters = append(options.filters, filters...)
	}
}

// WithLogHandler provides the handler used to log messages.
//
// If it is absent, it uses the handler of [slog.Default].
func WithLogHandler(handler slog.Handler) Option {
	return func(options *options) {
		if handler != nil {
			options.logger = slog.New(handler)
		}
	}
}

// WithConverterCacheSize sets how many resolved converters are kept in memory.
//
// The default size is 1024.
func WithConverterCacheSize(size int) Option {
	return func(options *options) {
		options.converterCacheSize = size
	}
}

// Option configures a Config with specific options.
type Option func(*options)

type options struct {
	logger             *slog.Logger
	converterCacheSize int

	sources    []Source
	providers  []Provider
	converters []Converter
	filters    []Filter
}
