// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert

import (
	"encoding"
	"fmt"
	"reflect"
)

// implicitStrategies are tried in order against a type that has neither
// a custom nor a built-in converter:
//   - string factory: *T implements encoding.TextUnmarshaler;
//   - parse function: *T implements Set(string) error, the shape of flag.Value;
//   - string-based construction: T is a named type over a built-in scalar kind.
//
//nolint:gochecknoglobals
var implicitStrategies = []func(reflect.Type) (Func, bool){
	textUnmarshaler,
	setter,
	named,
}

type stringSetter interface {
	Set(value string) error
}

func textUnmarshaler(typ reflect.Type) (Func, bool) {
	if typ.Kind() == reflect.Pointer || !reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return nil, false
	}

	return func(raw string) (any, error) {
		ptr := reflect.New(typ)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil { //nolint:forcetypeassert
			return nil, fmt.Errorf("cannot unmarshal %q as %v: %w", raw, typ, err)
		}

		return ptr.Elem().Interface(), nil
	}, true
}

func setter(typ reflect.Type) (Func, bool) {
	if typ.Kind() == reflect.Pointer || !reflect.PointerTo(typ).Implements(stringSetterType) {
		return nil, false
	}

	return func(raw string) (any, error) {
		ptr := reflect.New(typ)
		if err := ptr.Interface().(stringSetter).Set(raw); err != nil { //nolint:forcetypeassert
			return nil, fmt.Errorf("cannot set %q as %v: %w", raw, typ, err)
		}

		return ptr.Elem().Interface(), nil
	}, true
}

func named(typ reflect.Type) (Func, bool) {
	if typ.Name() == "" {
		return nil, false
	}
	convert, ok := scalar(typ)
	if !ok {
		return nil, false
	}

	return func(raw string) (any, error) {
		value, err := convert(raw)
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(value).Convert(typ).Interface(), nil
	}, true
}

//nolint:gochecknoglobals
var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringSetterType    = reflect.TypeFor[stringSetter]()
)
