// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nil-go/keyconf/internal"
	"github.com/nil-go/keyconf/internal/convert"
)

// Config resolves configuration from a set of ordered sources.
//
// Sources are consulted in descending ordinal order, and sources with the same ordinal
// in ascending name order. The first source defining a key wins.
//
// To create a new Config, call [New].
type Config struct {
	nocopy internal.NoCopy[Config]

	logger     *slog.Logger
	converters *convert.Registry

	// Writers serialize on mutex and publish a new view, readers load the current one.
	mutex sync.Mutex
	view  atomic.Pointer[view]

	listeners      []listener
	listenersMutex sync.RWMutex
	tracker        tracker
	changes        atomic.Uint64

	watched   atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New creates a new Config with the given Option(s).
// It returns an error if any provider fails to discover its sources.
func New(opts ...Option) (*Config, error) {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}

	converters, err := convert.New(option.converterCacheSize)
	if err != nil {
		return nil, err
	}
	config := &Config{
		logger:     option.logger,
		converters: converters,
	}
	config.view.Store(&view{})

	for _, converter := range option.converters {
		config.AddConverter(converter)
	}
	for _, filter := range option.filters {
		config.AddFilter(filter)
	}
	config.AddSources(option.sources...)
	for _, provider := range option.providers {
		if err := config.AddProvider(provider); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// AddSources adds sources to the Config.
// It does not invalidate cached values of accessors.
//
// This method is concurrency-safe.
// It panics if any source is nil.
func (c *Config) AddSources(sources ...Source) {
	c.nocopy.Check()

	if len(sources) == 0 {
		return
	}
	for _, source := range sources {
		if source == nil {
			panic("cannot add nil source")
		}
	}

	c.update(func(v *view) {
		v.registered = append(slices.Clone(v.registered), sources...)
	})

	for _, source := range sources {
		if notifier, ok := source.(Notifier); ok {
			notifier.OnChange(c.notify)
		}
	}
}

// AddProvider adds the sources discovered by the provider to the Config.
func (c *Config) AddProvider(provider Provider) error {
	if provider == nil {
		panic("cannot add nil provider")
	}

	sources, err := provider.Sources()
	if err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}
	c.AddSources(sources...)

	return nil
}

// AddConverter adds a custom converter to the Config.
//
// This method is concurrency-safe.
func (c *Config) AddConverter(converter Converter) {
	c.nocopy.Check()

	if converter == nil {
		panic("cannot add nil converter")
	}

	c.converters.Add(converter.Type(), converter.Priority(), converter.Convert, closerOf(converter))
}

// AddFilter adds a filter after the existing filters.
//
// This method is concurrency-safe.
func (c *Config) AddFilter(filter Filter) {
	c.nocopy.Check()

	if filter == nil {
		panic("cannot add nil filter")
	}

	c.update(func(v *view) {
		v.filters = append(slices.Clone(v.filters), filter)
	})
}

func (c *Config) update(modify func(*view)) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	next := *c.view.Load()
	modify(&next)
	next.sort()
	c.view.Store(&next)
}

// Sources returns the sources in the order they are consulted.
func (c *Config) Sources() []Source {
	c.nocopy.Check()

	return slices.Clone(c.view.Load().sources)
}

// RawValue returns the filtered value of the key without variable evaluation or conversion.
func (c *Config) RawValue(key string) (string, bool, error) {
	c.nocopy.Check()

	return c.view.Load().value(key)
}

// Properties returns the filtered properties of all scannable sources.
// For keys defined by multiple sources, the value follows the source order.
func (c *Config) Properties() (map[string]string, error) {
	c.nocopy.Check()

	v := c.view.Load()
	merged := make(map[string]string)
	for _, source := range v.sources {
		if !scannable(source) {
			continue
		}
		properties, err := source.Properties()
		if err != nil {
			return nil, fmt.Errorf("read properties of source %s: %w", source.Name(), err)
		}
		for key, value := range properties {
			if _, exist := merged[key]; !exist {
				merged[key] = v.filter(key, value)
			}
		}
	}

	return merged, nil
}

// PropertyNames returns the sorted keys defined by scannable sources.
// Keys only defined in non-scannable sources are resolvable but not listed.
func (c *Config) PropertyNames() ([]string, error) {
	properties, err := c.Properties()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}

// FilterValue passes the value through all filters in order.
func (c *Config) FilterValue(key, value string) string {
	return c.view.Load().filter(key, value)
}

// FilterValueForLog passes the value through the log variant of all filters in order.
// The result is for display only.
func (c *Config) FilterValueForLog(key, value string) string {
	for _, filter := range c.view.Load().filters {
		value = filter.FilterValueForLog(key, value)
	}

	return value
}

// Explain provides information about how Config resolves the given key
// from the sources. Values pass through [Config.FilterValueForLog].
func (c *Config) Explain(key string) string {
	c.nocopy.Check()

	type sourceValue struct {
		source Source
		value  string
	}
	var values []sourceValue
	explanation := &strings.Builder{}
	for _, source := range c.view.Load().sources {
		value, ok, err := source.Lookup(key)
		if err != nil {
			explanation.WriteString(key)
			explanation.WriteString(" cannot be explained: ")
			explanation.WriteString(err.Error())
			explanation.WriteString("\n\n")

			return explanation.String()
		}
		if ok {
			values = append(values, sourceValue{source: source, value: value})
		}
	}

	if len(values) == 0 {
		explanation.WriteString(key)
		explanation.WriteString(" has no configuration.\n\n")

		return explanation.String()
	}
	explanation.WriteString(key)
	explanation.WriteString(" has value[")
	explanation.WriteString(c.FilterValueForLog(key, values[0].value))
	explanation.WriteString("] that is loaded by source[")
	explanation.WriteString(describe(values[0].source))
	explanation.WriteString("].\n")
	if len(values) > 1 {
		explanation.WriteString("Here are other value(source)s:\n")
		for _, value := range values[1:] {
			explanation.WriteString("  - ")
			explanation.WriteString(c.FilterValueForLog(key, value.value))
			explanation.WriteString("(")
			explanation.WriteString(describe(value.source))
			explanation.WriteString(")\n")
		}
	}
	explanation.WriteString("\n")

	return explanation.String()
}

func describe(source Source) string {
	return source.Name() + "@" + strconv.Itoa(source.Ordinal())
}

// Close releases the resources held by closeable sources and converters.
// Only the first call has effects, later calls return the same error.
func (c *Config) Close() error {
	c.closeOnce.Do(func() {
		var errs []error
		for _, source := range c.view.Load().registered {
			if closer, ok := source.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					errs = append(errs, fmt.Errorf("close source %s: %w", source.Name(), err))
				}
			}
		}
		if err := c.converters.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close converters: %w", err))
		}
		c.closeErr = errors.Join(errs...)
	})

	return c.closeErr
}

func (c *Config) convert(key, raw string, typ reflect.Type) (any, error) {
	value, err := c.converters.Convert(raw, typ)
	if err != nil {
		return nil, &ConversionError{Key: key, Type: typ, Err: err}
	}

	return value, nil
}

// view is an immutable state of the registries.
type view struct {
	registered []Source
	sources    []Source
	filters    []Filter
}

func (v *view) sort() {
	// Reversed so the stable sort keeps later registered sources first on full ties.
	type ranked struct {
		source  Source
		ordinal int
		name    string
	}
	ranks := make([]ranked, 0, len(v.registered))
	for _, source := range slices.Backward(v.registered) {
		ranks = append(ranks, ranked{source: source, ordinal: source.Ordinal(), name: source.Name()})
	}
	slices.SortStableFunc(ranks, func(a, b ranked) int {
		if c := cmp.Compare(b.ordinal, a.ordinal); c != 0 {
			return c
		}

		return strings.Compare(a.name, b.name)
	})

	v.sources = make([]Source, 0, len(ranks))
	for _, rank := range ranks {
		v.sources = append(v.sources, rank.source)
	}
}

func (v *view) lookup(key string) (string, bool, error) {
	for _, source := range v.sources {
		value, ok, err := source.Lookup(key)
		if err != nil {
			return "", false, fmt.Errorf("lookup %s in source %s: %w", key, source.Name(), err)
		}
		if ok {
			return value, true, nil
		}
	}

	return "", false, nil
}

func (v *view) value(key string) (string, bool, error) {
	value, ok, err := v.lookup(key)
	if err != nil || !ok {
		return "", ok, err
	}

	return v.filter(key, value), true, nil
}

func (v *view) filter(key, value string) string {
	for _, filter := range v.filters {
		value = filter.FilterValue(key, value)
	}

	return value
}
