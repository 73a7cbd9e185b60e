// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/keyconf"
	"github.com/nil-go/keyconf/provider/memory"
)

func TestConfig_ordinal(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		sources     []keyconf.Source
		expected    string
		order       []string
	}{
		{
			description: "highest ordinal wins",
			sources: []keyconf.Source{
				mapSource{name: "low", ordinal: 100, values: map[string]string{"k": "low"}},
				mapSource{name: "high", ordinal: 300, values: map[string]string{"k": "high"}},
				mapSource{name: "middle", ordinal: 200, values: map[string]string{"k": "middle"}},
			},
			expected: "high",
			order:    []string{"high", "middle", "low"},
		},
		{
			description: "same ordinal ordered by name",
			sources: []keyconf.Source{
				mapSource{name: "b", ordinal: 100, values: map[string]string{"k": "b"}},
				mapSource{name: "a", ordinal: 100, values: map[string]string{"k": "a"}},
			},
			expected: "a",
			order:    []string{"a", "b"},
		},
		{
			description: "same ordinal and name",
			sources: []keyconf.Source{
				mapSource{name: "a", ordinal: 100, values: map[string]string{"k": "first"}},
				mapSource{name: "a", ordinal: 100, values: map[string]string{"k": "last"}},
			},
			expected: "last",
			order:    []string{"a", "a"},
		},
		{
			description: "fallback to lower ordinal",
			sources: []keyconf.Source{
				mapSource{name: "high", ordinal: 300, values: map[string]string{}},
				mapSource{name: "low", ordinal: 100, values: map[string]string{"k": "low"}},
			},
			expected: "low",
			order:    []string{"high", "low"},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			config, err := keyconf.New(keyconf.WithSource(testcase.sources...))
			require.NoError(t, err)

			for range 3 {
				value, err := keyconf.Value[string](config, "k")
				require.NoError(t, err)
				assert.Equal(t, testcase.expected, value)
			}
			var order []string
			for _, source := range config.Sources() {
				order = append(order, source.Name())
			}
			assert.Equal(t, testcase.order, order)
		})
	}
}

func TestConfig_AddSources(t *testing.T) {
	t.Parallel()

	config, err := keyconf.New(keyconf.WithSource(mapSource{name: "low", ordinal: 100, values: map[string]string{"k": "low"}}))
	require.NoError(t, err)
	accessor, err := keyconf.Access[string](config, "k").CacheFor(hour).Build()
	require.NoError(t, err)

	value, err := accessor.Value()
	require.NoError(t, err)
	assert.Equal(t, "low", value)

	config.AddSources(mapSource{name: "high", ordinal: 200, values: map[string]string{"k": "high"}})
	value, err = keyconf.Value[string](config, "k")
	require.NoError(t, err)
	assert.Equal(t, "high", value)

	// Adding sources does not invalidate cached values.
	value, err = accessor.Value()
	require.NoError(t, err)
	assert.Equal(t, "low", value)
}

func TestConfig_AddSources_concurrent(t *testing.T) {
	t.Parallel()

	config, err := keyconf.New()
	require.NoError(t, err)

	var waitGroup sync.WaitGroup
	for i := range 10 {
		waitGroup.Add(2)
		go func() {
			defer waitGroup.Done()

			config.AddSources(mapSource{name: strings.Repeat("s", i+1), ordinal: i, values: map[string]string{"k": "v"}})
		}()
		go func() {
			defer waitGroup.Done()

			_, _, err := keyconf.OptionalValue[string](config, "k")
			assert.NoError(t, err)
		}()
	}
	waitGroup.Wait()
	assert.Len(t, config.Sources(), 10)
}

func TestConfig_Properties(t *testing.T) {
	t.Parallel()

	config, err := keyconf.New(
		keyconf.WithSource(
			mapSource{name: "low", ordinal: 100, values: map[string]string{"a": "low", "b": "low"}},
			mapSource{name: "high", ordinal: 200, values: map[string]string{"b": "high", "c": "high"}},
			mapSource{name: "hidden", ordinal: 300, values: map[string]string{"d": "hidden", "a": "hidden"}, hidden: true},
		),
		keyconf.WithFilter(upperFilter{key: "c"}),
	)
	require.NoError(t, err)

	properties, err := config.Properties()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "low", "b": "high", "c": "HIGH"}, properties)

	names, err := config.PropertyNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	// Non-scannable sources still provide values.
	value, err := keyconf.Value[string](config, "d")
	require.NoError(t, err)
	assert.Equal(t, "hidden", value)
	value, err = keyconf.Value[string](config, "a")
	require.NoError(t, err)
	assert.Equal(t, "hidden", value)
}

func TestConfig_filter(t *testing.T) {
	t.Parallel()

	config, err := keyconf.New(
		keyconf.WithSource(memory.New(memory.WithValues(map[string]string{
			"db.password": "SECRET",
			"db.user":     "admin",
			"db.token":    "${db.password}",
		}))),
		keyconf.WithFilter(passwordFilter{}, keyconf.Redact()),
	)
	require.NoError(t, err)

	raw, ok, err := config.RawValue("db.password")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret", raw)

	value, err := keyconf.Value[string](config, "db.user")
	require.NoError(t, err)
	assert.Equal(t, "admin", value)

	accessor, err := keyconf.Access[string](config, "db.token").Build()
	require.NoError(t, err)
	value, err = accessor.Value()
	require.NoError(t, err)
	assert.Equal(t, "secret", value)

	assert.Equal(t, "secret", config.FilterValue("db.password", "SECRET"))
	assert.Equal(t, "******", config.FilterValueForLog("db.password", "SECRET"))
	assert.Equal(t, "admin", config.FilterValueForLog("db.user", "admin"))
}

func TestConfig_Explain(t *testing.T) {
	t.Parallel()

	config, err := keyconf.New(
		keyconf.WithSource(
			mapSource{name: "env", ordinal: 300, values: map[string]string{"config.nest": "env", "db.password": "pwd1"}},
			mapSource{name: "map", ordinal: 100, values: map[string]string{"owner": "map", "config.nest": "map", "db.password": "pwd2"}},
		),
		keyconf.WithFilter(keyconf.Redact()),
	)
	require.NoError(t, err)

	assert.Equal(t, "non-exist has no configuration.\n\n", config.Explain("non-exist"))
	assert.Equal(t, "owner has value[map] that is loaded by source[map@100].\n\n", config.Explain("owner"))
	expected := `config.nest has value[env] that is loaded by source[env@300].
Here are other value(source)s:
  - map(map@100)

`
	assert.Equal(t, expected, config.Explain("config.nest"))
	expected = `db.password has value[******] that is loaded by source[env@300].
Here are other value(source)s:
  - ******(map@100)

`
	assert.Equal(t, expected, config.Explain("db.password"))
}

func TestConfig_source_error(t *testing.T) {
	t.Parallel()

	config, err := keyconf.New(
		keyconf.WithSource(
			mapSource{name: "broken", ordinal: 200, err: errors.New("source error")},
			mapSource{name: "map", ordinal: 100, values: map[string]string{"k": "v"}},
		),
	)
	require.NoError(t, err)

	_, err = keyconf.Value[string](config, "k")
	require.EqualError(t, err, "lookup k in source broken: source error")

	_, err = config.Properties()
	require.EqualError(t, err, "read properties of source broken: source error")

	accessor, err := keyconf.Access[string](config, "k").Build()
	require.NoError(t, err)
	_, _, err = accessor.OptionalValue()
	require.EqualError(t, err, "lookup k in source broken: source error")

	assert.Equal(t, "k cannot be explained: source error\n\n", config.Explain("k"))
}

func TestConfig_provider(t *testing.T) {
	t.Parallel()

	config, err := keyconf.New(keyconf.WithProvider(keyconf.ProviderFunc(func() ([]keyconf.Source, error) {
		return []keyconf.Source{mapSource{name: "discovered", ordinal: 100, values: map[string]string{"k": "v"}}}, nil
	})))
	require.NoError(t, err)
	value, err := keyconf.Value[string](config, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	_, err = keyconf.New(keyconf.WithProvider(keyconf.ProviderFunc(func() ([]keyconf.Source, error) {
		return nil, errors.New("provider error")
	})))
	require.EqualError(t, err, "discover sources: provider error")
}

func TestConfig_Close(t *testing.T) {
	t.Parallel()

	source := &closeableSource{mapSource: mapSource{name: "closeable"}, err: errors.New("source close error")}
	converter := &closeableConverter{Converter: keyconf.NewConverter(keyconf.DefaultPriority, func(string) (int, error) {
		return 1, nil
	})}
	config, err := keyconf.New(keyconf.WithSource(source), keyconf.WithConverter(converter))
	require.NoError(t, err)

	err = config.Close()
	require.EqualError(t, err, "close source closeable: source close error")
	assert.Equal(t, 1, source.closed)
	assert.Equal(t, 1, converter.closed)

	// Close only has effects once.
	require.EqualError(t, config.Close(), "close source closeable: source close error")
	assert.Equal(t, 1, source.closed)
	assert.Equal(t, 1, converter.closed)
}

func TestConfig_panic(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		call        func(*keyconf.Config)
		err         string
	}{
		{
			description: "nil source",
			call: func(config *keyconf.Config) {
				config.AddSources(nil)
			},
			err: "cannot add nil source",
		},
		{
			description: "nil provider",
			call: func(config *keyconf.Config) {
				_ = config.AddProvider(nil)
			},
			err: "cannot add nil provider",
		},
		{
			description: "nil converter",
			call: func(config *keyconf.Config) {
				config.AddConverter(nil)
			},
			err: "cannot add nil converter",
		},
		{
			description: "nil filter",
			call: func(config *keyconf.Config) {
				config.AddFilter(nil)
			},
			err: "cannot add nil filter",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			config, err := keyconf.New()
			require.NoError(t, err)
			assert.PanicsWithValue(t, testcase.err, func() {
				testcase.call(config)
			})
		})
	}
}

type mapSource struct {
	name    string
	ordinal int
	values  map[string]string
	hidden  bool
	err     error
}

func (m mapSource) Name() string {
	return m.name
}

func (m mapSource) Ordinal() int {
	return m.ordinal
}

func (m mapSource) Lookup(key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	value, ok := m.values[key]

	return value, ok, nil
}

func (m mapSource) Properties() (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}

	return m.values, nil
}

func (m mapSource) Scannable() bool {
	return !m.hidden
}

// mutableSource changes without notifying the Config.
type mutableSource struct {
	mapSource

	mutex sync.RWMutex
}

func (m *mutableSource) Lookup(key string) (string, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.mapSource.Lookup(key)
}

func (m *mutableSource) set(key, value string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.values[key] = value
}

type closeableSource struct {
	mapSource

	closed int
	err    error
}

func (c *closeableSource) Close() error {
	c.closed++

	return c.err
}

type closeableConverter struct {
	keyconf.Converter

	closed int
}

func (c *closeableConverter) Close() error {
	c.closed++

	return nil
}

// passwordFilter lower-cases the values of password keys.
type passwordFilter struct{}

func (passwordFilter) FilterValue(key, value string) string {
	if strings.Contains(key, "password") {
		return strings.ToLower(value)
	}

	return value
}

func (passwordFilter) FilterValueForLog(_, value string) string {
	return value
}

type upperFilter struct {
	key string
}

func (u upperFilter) FilterValue(key, value string) string {
	if key == u.key {
		return strings.ToUpper(value)
	}

	return value
}

func (upperFilter) FilterValueForLog(_, value string) string {
	return value
}
