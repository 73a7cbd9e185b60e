// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"fmt"
	"reflect"
)

// Value returns the value of the key converted to T.
// It returns ErrNotFound if no source defines the key.
//
// Filters are applied, but ${key} references are kept as they are.
// Use [Access] for variable evaluation, defaults, lookup suffixes and caching.
func Value[T any](config *Config, key string) (T, error) {
	value, ok, err := OptionalValue[T](config, key)
	if err != nil {
		return value, err
	}
	if !ok {
		return value, notFound(key)
	}

	return value, nil
}

// OptionalValue is like [Value], but reports absence with false instead of ErrNotFound.
func OptionalValue[T any](config *Config, key string) (T, bool, error) {
	var zero T

	raw, ok, err := config.RawValue(key)
	if err != nil || !ok {
		return zero, false, err
	}
	value, err := config.convert(key, raw, reflect.TypeFor[T]())
	if err != nil {
		return zero, false, err
	}
	typed, err := cast[T](key, value)
	if err != nil {
		return zero, false, err
	}

	return typed, true, nil
}

// Access starts building an [Accessor] for the key.
func Access[T any](config *Config, key string) *Builder[T] {
	if config == nil {
		panic("cannot access key with nil config")
	}

	return &Builder[T]{config: config, key: key, evaluate: true}
}

func cast[T any](key string, value any) (T, error) {
	if value == nil {
		var zero T

		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return typed, &ConversionError{
			Key:  key,
			Type: reflect.TypeFor[T](),
			Err:  fmt.Errorf("converter returns %T", value), //nolint:err113
		}
	}

	return typed, nil
}
