// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"io"
	"reflect"
)

// Converter converts a raw property value into a value of Type.
//
// Among converters for the same type, the one with the highest Priority wins.
// A Converter that also implements io.Closer is closed by Config.Close.
type Converter interface {
	Type() reflect.Type
	Priority() int
	Convert(raw string) (any, error)
}

// DefaultPriority is the priority of converters that do not need a specific one.
// Built-in converters rank below it.
const DefaultPriority = 100

// NewConverter creates a Converter for T from the given function.
func NewConverter[T any](priority int, convert func(raw string) (T, error)) Converter {
	if convert == nil {
		panic("cannot create converter with nil function")
	}

	return converter[T]{priority: priority, convert: convert}
}

type converter[T any] struct {
	priority int
	convert  func(string) (T, error)
}

func (converter[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c converter[T]) Priority() int {
	return c.priority
}

func (c converter[T]) Convert(raw string) (any, error) {
	return c.convert(raw)
}

func closerOf(converter Converter) io.Closer {
	if closer, ok := converter.(io.Closer); ok {
		return closer
	}

	return nil
}
