// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"log/slog"
	"reflect"
	"sync/atomic"
)

// Get returns the value of the key in the default Config converted to T.
// It returns zero value if there is an error, or the default Config has not been set.
func Get[T any](key string) T {
	config := defaultConfig.Load()
	if config == nil {
		slog.Error(
			"Default config has not been set, return empty value instead.",
			"key", key,
		)

		var zero T

		return zero
	}

	value, ok, err := OptionalValue[T](config, key)
	if err != nil {
		config.logger.Error(
			"Could not read config, return empty value instead.",
			"error", err,
			"key", key,
			"type", reflect.TypeFor[T](),
		)
	}
	if err != nil || !ok {
		var zero T

		return zero
	}

	return value
}

// SetDefault makes c the default [Config].
// After this call, the package's top functions (e.g. keyconf.Get)
// read from the default config.
func SetDefault(c *Config) {
	defaultConfig.Store(c)
}

// Default returns the default [Config], or nil if it has not been set.
func Default() *Config {
	return defaultConfig.Load()
}

// Release clears the default [Config] and closes it.
func Release() error {
	if config := defaultConfig.Swap(nil); config != nil {
		return config.Close()
	}

	return nil
}

var defaultConfig atomic.Pointer[Config] //nolint:gochecknoglobals
