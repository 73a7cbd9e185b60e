// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/nil-go/keyconf/internal/expand"
	"github.com/nil-go/keyconf/internal/suffix"
)

// Builder describes how an [Accessor] resolves a key.
//
// Builder is immutable: every With method returns a modified copy,
// so a partially configured Builder can be shared.
// To create a new Builder, call [Access].
type Builder[T any] struct {
	config *Config
	key    string

	converter  func(raw string) (T, error)
	bean       func(config *Config, key string) (T, error)
	defaultVal *T
	defaultRaw *string
	cacheFor   time.Duration
	evaluate   bool
	suffixes   []lookupSuffix

	err error
}

type lookupSuffix struct {
	literal  string
	accessor *Accessor[string]
}

// WithDefault sets the value returned when no source defines the key.
func (b *Builder[T]) WithDefault(value T) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		builder.defaultVal = &value
		builder.defaultRaw = nil
	})
}

// WithStringDefault sets the default value in its raw form.
// It is converted when the Builder is built.
func (b *Builder[T]) WithStringDefault(raw string) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		builder.defaultRaw = &raw
		builder.defaultVal = nil
	})
}

// CacheFor caches the resolved value for the given duration.
// Cached values are also dropped eagerly when a source reports a change of the key.
func (b *Builder[T]) CacheFor(duration time.Duration) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		if duration < 0 {
			builder.err = fmt.Errorf("negative cache duration %v for %s", duration, b.key) //nolint:err113

			return
		}
		builder.cacheFor = duration
	})
}

// EvaluateVariables controls whether ${key} references in the value are replaced.
// It is enabled by default.
func (b *Builder[T]) EvaluateVariables(evaluate bool) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		builder.evaluate = evaluate
	})
}

// AddLookupSuffix appends a literal lookup suffix.
//
// With suffixes [a, b], the key is searched as key.a.b, key.a, key.b and key.
// An empty suffix is ignored.
func (b *Builder[T]) AddLookupSuffix(suffix string) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		builder.suffixes = append(slices.Clone(builder.suffixes), lookupSuffix{literal: suffix})
	})
}

// AddLookupSuffixAccessor appends a lookup suffix whose value is resolved by the accessor
// on every resolution. The suffix is ignored while the accessor has no value.
func (b *Builder[T]) AddLookupSuffixAccessor(accessor *Accessor[string]) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		if accessor == nil {
			builder.err = fmt.Errorf("nil lookup suffix accessor for %s", b.key) //nolint:err113

			return
		}
		builder.suffixes = append(slices.Clone(builder.suffixes), lookupSuffix{accessor: accessor})
	})
}

// WithPropertyConverter sets the converter used instead of the converters of the Config.
func (b *Builder[T]) WithPropertyConverter(convert func(raw string) (T, error)) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		builder.converter = convert
	})
}

// WithBeanConverter sets a function composing the value from the Config
// instead of converting a single property.
//
// It is called with every candidate key in lookup suffix order,
// and the first call not returning ErrNotFound wins.
func (b *Builder[T]) WithBeanConverter(convert func(config *Config, key string) (T, error)) *Builder[T] {
	return b.with(func(builder *Builder[T]) {
		builder.bean = convert
	})
}

func (b *Builder[T]) with(modify func(*Builder[T])) *Builder[T] {
	builder := *b
	if builder.err == nil {
		modify(&builder)
	}

	return &builder
}

// Build creates the Accessor.
// It returns the first error recorded while building, or the error converting the string default.
func (b *Builder[T]) Build() (*Accessor[T], error) {
	if b.err != nil {
		return nil, b.err
	}

	accessor := &Accessor[T]{
		config:    b.config,
		key:       b.key,
		converter: b.converter,
		bean:      b.bean,
		cacheFor:  b.cacheFor,
		evaluate:  b.evaluate,
		suffixes:  slices.Clone(b.suffixes),
		state:     &cacheState{key: b.key},
	}
	switch {
	case b.defaultVal != nil:
		accessor.defaultVal, accessor.hasDefault = *b.defaultVal, true
	case b.defaultRaw != nil:
		value, err := accessor.convert(b.key, *b.defaultRaw)
		if err != nil {
			return nil, fmt.Errorf("convert default value: %w", err)
		}
		accessor.defaultVal, accessor.hasDefault = value, true
	}
	accessor.resolvedKey = b.key
	if accessor.cacheFor > 0 {
		b.config.tracker.track(accessor.state)
	}

	return accessor, nil
}

// Accessor resolves one key with the policy described by its [Builder].
// It is reusable and concurrency-safe.
type Accessor[T any] struct {
	config *Config
	key    string

	converter  func(raw string) (T, error)
	bean       func(config *Config, key string) (T, error)
	defaultVal T
	hasDefault bool
	cacheFor   time.Duration
	evaluate   bool
	suffixes   []lookupSuffix

	state       *cacheState
	mutex       sync.Mutex
	resolvedKey string
	cached      *resolution[T]
	cachedAt    time.Time
}

type resolution[T any] struct {
	value        T
	found        bool
	key          string
	dependencies []string
}

// Value returns the resolved value, or the default value if no candidate key is defined.
// It returns ErrNotFound if there is neither.
//
// Values of slice and map types are shared with the cache and the default value,
// so callers must not modify them.
func (a *Accessor[T]) Value() (T, error) {
	value, ok, err := a.OptionalValue()
	if err != nil {
		return value, err
	}
	if !ok {
		return value, notFound(a.key)
	}

	return value, nil
}

// OptionalValue is like Value, but reports absence with false instead of ErrNotFound.
func (a *Accessor[T]) OptionalValue() (T, bool, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.cached != nil && !a.state.stale.Load() && time.Since(a.cachedAt) < a.cacheFor {
		return a.cached.value, a.cached.found, nil
	}

	a.state.stale.Store(false)
	a.cached = nil
	changes := a.config.changes.Load()
	result, err := a.resolve(a.config.view.Load())
	if err != nil {
		var zero T

		return zero, false, err
	}
	a.resolvedKey = result.key
	a.state.dependencies.Store(&result.dependencies)
	// Changes notified during resolve were matched against the previous dependencies.
	if a.cacheFor > 0 && a.config.changes.Load() == changes {
		a.cached, a.cachedAt = &result, time.Now()
	}

	return result.value, result.found, nil
}

// PropertyName returns the key the Accessor was built for.
func (a *Accessor[T]) PropertyName() string {
	return a.key
}

// ResolvedPropertyName returns the candidate key that provided the value in the latest resolution.
// It is the key itself before the first resolution, or if the value is the default or absent.
func (a *Accessor[T]) ResolvedPropertyName() string {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.resolvedKey
}

// DefaultValue returns the default value and whether it has been set.
func (a *Accessor[T]) DefaultValue() (T, bool) {
	return a.defaultVal, a.hasDefault
}

func (a *Accessor[T]) resolve(view *view) (resolution[T], error) { //nolint:cyclop
	result := resolution[T]{key: a.key}
	lookup := func(key string) (string, bool, error) {
		result.dependencies = append(result.dependencies, key)

		return view.value(key)
	}

	suffixes := make([]string, 0, len(a.suffixes))
	for _, lookupSuffix := range a.suffixes {
		if lookupSuffix.accessor == nil {
			if lookupSuffix.literal != "" {
				suffixes = append(suffixes, lookupSuffix.literal)
			}

			continue
		}

		nested, err := lookupSuffix.accessor.resolve(view)
		result.dependencies = append(result.dependencies, nested.dependencies...)
		if err != nil {
			return result, fmt.Errorf("resolve lookup suffix of %s: %w", a.key, err)
		}
		if nested.found && nested.value != "" {
			suffixes = append(suffixes, nested.value)
		}
	}
	candidates := suffix.Candidates(a.key, suffixes)

	if a.bean != nil {
		result.dependencies = append(result.dependencies, candidates...)
		for _, candidate := range candidates {
			value, err := a.bean(a.config, candidate)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return result, err
			}
			result.value, result.found, result.key = value, true, candidate

			return result, nil
		}

		return a.fallback(result), nil
	}

	for _, candidate := range candidates {
		raw, ok, err := lookup(candidate)
		if err != nil {
			return result, err
		}
		if !ok {
			continue
		}

		if a.evaluate {
			if raw, err = expand.Expand(candidate, raw, lookup); err != nil {
				return result, fmt.Errorf("evaluate variables of %s: %w", candidate, err)
			}
		}
		value, err := a.convert(candidate, raw)
		if err != nil {
			return result, err
		}
		result.value, result.found, result.key = value, true, candidate

		return result, nil
	}

	return a.fallback(result), nil
}

func (a *Accessor[T]) fallback(result resolution[T]) resolution[T] {
	if a.hasDefault {
		result.value, result.found = a.defaultVal, true
	}

	return result
}

func (a *Accessor[T]) convert(key, raw string) (T, error) {
	if a.converter != nil {
		value, err := a.converter(raw)
		if err != nil {
			return value, &ConversionError{Key: key, Type: reflect.TypeFor[T](), Err: err}
		}

		return value, nil
	}

	value, err := a.config.convert(key, raw, reflect.TypeFor[T]())
	if err != nil {
		var zero T

		return zero, err
	}

	return cast[T](key, value)
}
