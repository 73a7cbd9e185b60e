// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import "fmt"

// Snapshot holds the values of a group of accessors resolved against the same state of the sources,
// so values that belong together are read consistently.
//
// To create a new Snapshot, call [Config.Snapshot].
type Snapshot struct {
	values map[any]snapshotValue
}

type snapshotValue struct {
	value any
	found bool
}

// Snapshotter is implemented by [Accessor] of every type.
type Snapshotter interface {
	snapshot(view *view) (any, bool, error)
}

// Snapshot resolves the accessors against the current sources, bypassing their caches.
func (c *Config) Snapshot(accessors ...Snapshotter) (*Snapshot, error) {
	c.nocopy.Check()

	view := c.view.Load()
	snapshot := &Snapshot{values: make(map[any]snapshotValue, len(accessors))}
	for _, accessor := range accessors {
		value, found, err := accessor.snapshot(view)
		if err != nil {
			return nil, err
		}
		snapshot.values[accessor] = snapshotValue{value: value, found: found}
	}

	return snapshot, nil
}

func (a *Accessor[T]) snapshot(view *view) (any, bool, error) {
	result, err := a.resolve(view)
	if err != nil {
		return nil, false, err
	}

	return result.value, result.found, nil
}

// SnapshotValue returns the value of the Accessor in the snapshot.
// It returns ErrNotFound if the value was absent,
// and ErrNotInSnapshot if the Accessor was not part of the snapshot.
func (a *Accessor[T]) SnapshotValue(snapshot *Snapshot) (T, error) {
	value, ok, err := a.SnapshotOptionalValue(snapshot)
	if err != nil {
		return value, err
	}
	if !ok {
		return value, notFound(a.key)
	}

	return value, nil
}

// SnapshotOptionalValue is like SnapshotValue, but reports absence with false instead of ErrNotFound.
func (a *Accessor[T]) SnapshotOptionalValue(snapshot *Snapshot) (T, bool, error) {
	var zero T

	if snapshot == nil {
		return zero, false, fmt.Errorf("%w: %s", ErrNotInSnapshot, a.key)
	}
	entry, ok := snapshot.values[a]
	if !ok {
		return zero, false, fmt.Errorf("%w: %s", ErrNotInSnapshot, a.key)
	}
	if !entry.found {
		return zero, false, nil
	}

	return entry.value.(T), true, nil //nolint:forcetypeassert
}
