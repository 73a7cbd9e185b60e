// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package memory provides a mutable in-memory configuration source.
//
// Memory is the programmatic counterpart of command line system properties:
// it has the high default ordinal 400, and notifies the Config of every mutation
// so cached values depending on the changed keys are dropped immediately.
package memory

import (
	"maps"
	"slices"
	"sync"
)

// Memory is a Source that holds properties in memory.
//
// To create a new Memory, call [New].
type Memory struct {
	name    string
	ordinal int

	mutex     sync.RWMutex
	values    map[string]string
	onChanges []func(keys []string)
}

// New creates a Memory with the given Option(s).
func New(opts ...Option) *Memory {
	option := &options{
		name:    "memory",
		ordinal: defaultOrdinal,
	}
	for _, opt := range opts {
		opt(option)
	}

	return &Memory{
		name:    option.name,
		ordinal: option.ordinal,
		values:  maps.Clone(option.values),
	}
}

func (m *Memory) Name() string {
	return m.name
}

func (m *Memory) Ordinal() int {
	return m.ordinal
}

func (m *Memory) Lookup(key string) (string, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, ok := m.values[key]

	return value, ok, nil
}

func (m *Memory) Properties() (map[string]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	values := maps.Clone(m.values)
	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

// Set sets the value of the key.
func (m *Memory) Set(key, value string) {
	m.SetAll(map[string]string{key: value})
}

// SetAll sets the values of all given keys, and notifies the changed keys at once.
func (m *Memory) SetAll(values map[string]string) {
	m.update(func(current map[string]string) []string {
		var changed []string
		for key, value := range values {
			if old, ok := current[key]; !ok || old != value {
				current[key] = value
				changed = append(changed, key)
			}
		}

		return changed
	})
}

// Delete removes the keys.
func (m *Memory) Delete(keys ...string) {
	m.update(func(current map[string]string) []string {
		var changed []string
		for _, key := range keys {
			if _, ok := current[key]; ok {
				delete(current, key)
				changed = append(changed, key)
			}
		}

		return changed
	})
}

func (m *Memory) update(modify func(map[string]string) []string) {
	m.mutex.Lock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	changed := modify(m.values)
	onChanges := slices.Clone(m.onChanges)
	m.mutex.Unlock()

	if len(changed) == 0 {
		return
	}
	slices.Sort(changed)
	for _, onChange := range onChanges {
		onChange(changed)
	}
}

// OnChange registers a callback function that is executed with the changed keys
// after every mutation.
func (m *Memory) OnChange(onChange func(keys []string)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.onChanges = append(m.onChanges, onChange)
}

const defaultOrdinal = 400
