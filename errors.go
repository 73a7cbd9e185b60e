// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/nil-go/keyconf/internal/convert"
	"github.com/nil-go/keyconf/internal/expand"
)

var (
	// ErrNotFound is returned when a key has no value in any source and no default.
	ErrNotFound = errors.New("configuration not found")
	// ErrConversion matches every *ConversionError.
	ErrConversion = errors.New("cannot convert configuration")
	// ErrNoConverter is wrapped in a *ConversionError if no converter serves the target type.
	ErrNoConverter = convert.ErrNoConverter
	// ErrNotInSnapshot is returned when reading a Snapshot with an accessor it does not contain.
	ErrNotInSnapshot = errors.New("accessor is not part of the snapshot")
	// ErrVariableCycle is returned when ${key} references form a cycle.
	ErrVariableCycle = expand.ErrCycle
)

// ConversionError describes a raw value that could not be converted to the requested type.
type ConversionError struct {
	Key  string
	Type reflect.Type
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s to %v: %v", e.Key, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion //nolint:errorlint,err113
}

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}
