// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sync"

	"github.com/maypok86/otter/v2"
)

// Func converts a raw string into a value of the type it is registered for.
type Func func(raw string) (any, error)

// Registry resolves the conversion function for a target type.
//
// Resolution order:
//  1. custom converters registered for the exact type, highest priority first;
//  2. built-in converters;
//  3. implicit converters derived from the type's own capabilities;
//  4. collection converters for slices, arrays and sets.
//
// Resolved functions are memoized per type until the next registration.
type Registry struct {
	mutex      sync.RWMutex
	custom     map[reflect.Type][]custom
	closers    []io.Closer
	generation uint64

	resolved *otter.Cache[reflect.Type, Func]
}

type custom struct {
	priority int
	convert  Func
}

// New creates a Registry whose memo cache keeps at most cacheSize resolved types.
func New(cacheSize int) (*Registry, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := otter.New(&otter.Options[reflect.Type, Func]{MaximumSize: cacheSize})
	if err != nil {
		return nil, fmt.Errorf("create converter cache: %w", err)
	}

	return &Registry{
		custom:   make(map[reflect.Type][]custom),
		resolved: cache,
	}, nil
}

// Add registers a custom conversion function for typ.
// Among functions with equal priority, the first registered wins.
// If closer is not nil, it is closed by Close.
func (r *Registry) Add(typ reflect.Type, priority int, convert Func, closer io.Closer) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	customs := append(r.custom[typ], custom{priority: priority, convert: convert})
	slices.SortStableFunc(customs, func(a, b custom) int {
		return cmp.Compare(b.priority, a.priority)
	})
	r.custom[typ] = customs
	if closer != nil {
		r.closers = append(r.closers, closer)
	}
	r.generation++
	r.resolved.InvalidateAll()
}

// Convert converts raw into a value of typ.
func (r *Registry) Convert(raw string, typ reflect.Type) (any, error) {
	convert, err := r.For(typ)
	if err != nil {
		return nil, err
	}

	return convert(raw)
}

// For returns the conversion function for typ, or ErrNoConverter.
func (r *Registry) For(typ reflect.Type) (Func, error) {
	if convert, ok := r.resolved.GetIfPresent(typ); ok {
		return convert, nil
	}

	r.mutex.RLock()
	generation := r.generation
	r.mutex.RUnlock()

	convert, err := r.resolve(typ)
	if err != nil {
		return nil, err
	}

	// A registration during resolve may have made convert outdated.
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if r.generation == generation {
		r.resolved.Set(typ, convert)
	}

	return convert, nil
}

func (r *Registry) resolve(typ reflect.Type) (Func, error) {
	r.mutex.RLock()
	customs := r.custom[typ]
	r.mutex.RUnlock()
	if len(customs) > 0 {
		return customs[0].convert, nil
	}

	if convert, ok := builtin(typ); ok {
		return convert, nil
	}
	for _, strategy := range implicitStrategies {
		if convert, ok := strategy(typ); ok {
			return convert, nil
		}
	}
	if typ.Kind() == reflect.Pointer {
		return r.pointer(typ)
	}
	if convert, ok, err := r.collection(typ); ok {
		return convert, err
	}

	return nil, fmt.Errorf("%w for type %v", ErrNoConverter, typ)
}

func (r *Registry) pointer(typ reflect.Type) (Func, error) {
	elem, err := r.For(typ.Elem())
	if err != nil {
		return nil, err
	}

	return func(raw string) (any, error) {
		value, err := elem(raw)
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(typ.Elem())
		if value != nil {
			ptr.Elem().Set(reflect.ValueOf(value))
		}

		return ptr.Interface(), nil
	}, nil
}

func (r *Registry) collection(typ reflect.Type) (Func, bool, error) {
	switch typ.Kind() { //nolint:exhaustive
	case reflect.Slice:
		elem, err := r.For(typ.Elem())
		if err != nil {
			return nil, true, err
		}

		return func(raw string) (any, error) {
			tokens := Split(raw)
			slice := reflect.MakeSlice(typ, 0, len(tokens))
			for _, token := range tokens {
				value, err := convertElem(elem, token, typ.Elem())
				if err != nil {
					return nil, err
				}
				slice = reflect.Append(slice, value)
			}

			return slice.Interface(), nil
		}, true, nil

	case reflect.Array:
		elem, err := r.For(typ.Elem())
		if err != nil {
			return nil, true, err
		}

		return func(raw string) (any, error) {
			tokens := Split(raw)
			if len(tokens) > typ.Len() {
				return nil, fmt.Errorf("%d elements overflow %v", len(tokens), typ) //nolint:err113
			}
			array := reflect.New(typ).Elem()
			for i, token := range tokens {
				value, err := convertElem(elem, token, typ.Elem())
				if err != nil {
					return nil, err
				}
				array.Index(i).Set(value)
			}

			return array.Interface(), nil
		}, true, nil

	case reflect.Map:
		mark, ok := setMark(typ.Elem())
		if !ok {
			return nil, false, nil
		}
		elem, err := r.For(typ.Key())
		if err != nil {
			return nil, true, err
		}

		return func(raw string) (any, error) {
			tokens := Split(raw)
			set := reflect.MakeMapWithSize(typ, len(tokens))
			for _, token := range tokens {
				value, err := convertElem(elem, token, typ.Key())
				if err != nil {
					return nil, err
				}
				set.SetMapIndex(value, mark)
			}

			return set.Interface(), nil
		}, true, nil

	default:
		return nil, false, nil
	}
}

// setMark returns the value stored for each member of a set whose map value type is typ.
func setMark(typ reflect.Type) (reflect.Value, bool) {
	switch {
	case typ.Kind() == reflect.Struct && typ.NumField() == 0:
		return reflect.New(typ).Elem(), true
	case typ.Kind() == reflect.Bool:
		return reflect.ValueOf(true).Convert(typ), true
	default:
		return reflect.Value{}, false
	}
}

func convertElem(convert Func, token string, typ reflect.Type) (reflect.Value, error) {
	value, err := convert(token)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("element %q: %w", token, err)
	}
	if value == nil {
		return reflect.Zero(typ), nil
	}

	return reflect.ValueOf(value), nil
}

// Close closes all closeable converters.
func (r *Registry) Close() error {
	r.mutex.Lock()
	closers := r.closers
	r.closers = nil
	r.mutex.Unlock()

	var errs []error
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

const defaultCacheSize = 1024

// ErrNoConverter is returned when no converter can be found for a type.
var ErrNoConverter = errors.New("no converter")
