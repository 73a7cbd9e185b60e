// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"weak"

	"golang.org/x/sync/errgroup"
)

// Watch starts the watchers of all [Watcher] sources, and marks affected values stale
// when they report changes.
// It blocks until ctx is done, or any watcher returns an error.
// WARNING: sources added after calling Watch do not get watched.
//
// It only can be called once. Call after first has no effects.
// It panics if ctx is nil.
func (c *Config) Watch(ctx context.Context) error {
	c.nocopy.Check()

	if ctx == nil {
		panic("cannot watch change with nil context")
	}

	var watchers []Source
	for _, source := range c.view.Load().sources {
		if _, ok := source.(Watcher); ok {
			watchers = append(watchers, source)
		}
	}
	if len(watchers) == 0 {
		return nil
	}

	if c.watched.Swap(true) {
		c.logger.WarnContext(ctx, "Config has been watched, call Watch again has no effects.")

		return nil
	}

	group, ctx := errgroup.WithContext(ctx)
	for _, source := range watchers {
		group.Go(func() error {
			c.logger.DebugContext(ctx, "Watching configuration change.", "source", source.Name())
			if err := source.(Watcher).Watch(ctx, c.notify); err != nil {
				return fmt.Errorf("watch source %s: %w", source.Name(), err)
			}

			return nil
		})
	}

	return group.Wait()
}

// OnChange registers a callback function that is executed with the changed keys
// when any of the given keys, or any key under them, changes.
// If no key is given, it is executed for every change.
//
// The callback runs synchronously after cached values have been marked stale,
// so it observes the new values. It must be non-blocking and usually completes instantly.
//
// This method is concurrency-safe.
// It panics if onChange is nil.
func (c *Config) OnChange(onChange func(keys []string), keys ...string) {
	c.nocopy.Check()

	if onChange == nil {
		panic("cannot register nil onChange")
	}

	c.listenersMutex.Lock()
	defer c.listenersMutex.Unlock()

	c.listeners = append(c.listeners, listener{keys: slices.Clone(keys), onChange: onChange})
}

func (c *Config) notify(keys []string) {
	if len(keys) == 0 {
		return
	}

	// Source ordinals may change with their content.
	c.update(func(*view) {})
	c.changes.Add(1)
	c.tracker.invalidate(keys)
	c.logger.Info("Configuration has been changed.", "keys", keys)

	c.listenersMutex.RLock()
	listeners := slices.Clone(c.listeners)
	c.listenersMutex.RUnlock()
	for _, listener := range listeners {
		if listener.matches(keys) {
			listener.onChange(keys)
		}
	}
}

type listener struct {
	keys     []string
	onChange func(keys []string)
}

func (l listener) matches(changed []string) bool {
	if len(l.keys) == 0 {
		return true
	}

	return slices.ContainsFunc(l.keys, func(key string) bool {
		return slices.ContainsFunc(changed, func(change string) bool {
			return covers(key, change)
		})
	})
}

// covers reports whether a change of key changed is relevant to key.
func covers(key, changed string) bool {
	return changed == key || strings.HasPrefix(changed, key+".")
}

// tracker holds weak references to the cache states of caching accessors,
// so they can be marked stale eagerly without keeping the accessors alive.
type tracker struct {
	mutex  sync.Mutex
	states []weak.Pointer[cacheState]
}

func (t *tracker) track(state *cacheState) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.states = slices.DeleteFunc(t.states, func(pointer weak.Pointer[cacheState]) bool {
		return pointer.Value() == nil
	})
	t.states = append(t.states, weak.Make(state))
}

func (t *tracker) invalidate(keys []string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.states = slices.DeleteFunc(t.states, func(pointer weak.Pointer[cacheState]) bool {
		state := pointer.Value()
		if state == nil {
			return true
		}
		if state.affected(keys) {
			state.stale.Store(true)
		}

		return false
	})
}

// cacheState is the part of a caching accessor visible to change notification.
type cacheState struct {
	key          string
	stale        atomic.Bool
	dependencies atomic.Pointer[[]string]
}

func (s *cacheState) affected(keys []string) bool {
	var dependencies []string
	if deps := s.dependencies.Load(); deps != nil {
		dependencies = *deps
	}

	return slices.ContainsFunc(keys, func(key string) bool {
		return covers(s.key, key) || slices.Contains(dependencies, key)
	})
}
