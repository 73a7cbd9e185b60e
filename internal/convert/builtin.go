// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

func builtin(typ reflect.Type) (Func, bool) {
	if convert, ok := builtins[typ]; ok {
		return convert, true
	}
	if typ.Kind() == reflect.Interface && stringType.AssignableTo(typ) {
		return convertString, true
	}

	return nil, false
}

// scalar returns the built-in converter for the underlying kind of typ.
func scalar(typ reflect.Type) (Func, bool) { //nolint:cyclop
	switch typ.Kind() { //nolint:exhaustive
	case reflect.String:
		return convertString, true
	case reflect.Bool:
		return convertBool, true
	case reflect.Int:
		return intOf[int](strconv.IntSize), true
	case reflect.Int8:
		return intOf[int8](8), true
	case reflect.Int16:
		return intOf[int16](16), true
	case reflect.Int32:
		return intOf[int32](32), true
	case reflect.Int64:
		return intOf[int64](64), true
	case reflect.Uint:
		return uintOf[uint](strconv.IntSize), true
	case reflect.Uint8:
		return uintOf[uint8](8), true
	case reflect.Uint16:
		return uintOf[uint16](16), true
	case reflect.Uint32:
		return uintOf[uint32](32), true
	case reflect.Uint64:
		return uintOf[uint64](64), true
	case reflect.Float32:
		return convertFloat32, true
	case reflect.Float64:
		return convertFloat64, true
	default:
		return nil, false
	}
}

func convertString(raw string) (any, error) {
	return raw, nil
}

// convertBool accepts true, yes, y, on and 1 in any case as true.
// Every other value is false.
func convertBool(raw string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "on", "1":
		return true, nil
	default:
		return false, nil
	}
}

func intOf[T int | int8 | int16 | int32 | int64](bits int) Func {
	return func(raw string) (any, error) {
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, bits)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as %T: %w", raw, T(0), err)
		}

		return T(i), nil
	}
}

func uintOf[T uint | uint8 | uint16 | uint32 | uint64](bits int) Func {
	return func(raw string) (any, error) {
		u, err := strconv.ParseUint(strings.TrimSpace(raw), 10, bits)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as %T: %w", raw, T(0), err)
		}

		return T(u), nil
	}
}

func convertFloat32(raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as float32: %w", raw, err)
	}

	return float32(f), nil
}

func convertFloat64(raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as float64: %w", raw, err)
	}

	return f, nil
}

func convertDuration(raw string) (any, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as duration: %w", raw, err)
	}

	return d, nil
}

func convertURLPointer(raw string) (any, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as url: %w", raw, err)
	}

	return u, nil
}

func convertURL(raw string) (any, error) {
	u, err := convertURLPointer(raw)
	if err != nil {
		return nil, err
	}

	return *u.(*url.URL), nil //nolint:forcetypeassert
}

func convertBytes(raw string) (any, error) {
	return []byte(raw), nil
}

//nolint:gochecknoglobals
var (
	stringType = reflect.TypeFor[string]()
	builtins   = map[reflect.Type]Func{
		stringType:                       convertString,
		reflect.TypeFor[bool]():          convertBool,
		reflect.TypeFor[int]():           intOf[int](strconv.IntSize),
		reflect.TypeFor[int8]():          intOf[int8](8),
		reflect.TypeFor[int16]():         intOf[int16](16),
		reflect.TypeFor[int32]():         intOf[int32](32),
		reflect.TypeFor[int64]():         intOf[int64](64),
		reflect.TypeFor[uint]():          uintOf[uint](strconv.IntSize),
		reflect.TypeFor[uint8]():         uintOf[uint8](8),
		reflect.TypeFor[uint16]():        uintOf[uint16](16),
		reflect.TypeFor[uint32]():        uintOf[uint32](32),
		reflect.TypeFor[uint64]():        uintOf[uint64](64),
		reflect.TypeFor[float32]():       convertFloat32,
		reflect.TypeFor[float64]():       convertFloat64,
		reflect.TypeFor[time.Duration](): convertDuration,
		reflect.TypeFor[url.URL]():       convertURL,
		reflect.TypeFor[*url.URL]():      convertURLPointer,
		reflect.TypeFor[[]byte]():        convertBytes,
	}
)
