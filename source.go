// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import (
	"context"

	"github.com/nil-go/keyconf/internal/maps"
)

// Source is a named, read-only set of properties with an ordinal.
// When sources define the same key, the one with the highest ordinal wins.
//
// Lookup returns false if the key is not defined in the source.
// Properties returns all properties the source knows about.
type Source interface {
	Name() string
	Ordinal() int
	Lookup(key string) (string, bool, error)
	Properties() (map[string]string, error)
}

// Scanner is the interface that a Source implements
// to tell whether its properties can be enumerated.
// A Source that does not implement Scanner is scannable.
type Scanner interface {
	Scannable() bool
}

// Notifier is the interface that a Source implements if it changes on its own.
//
// The Config registers onChange when the source is added,
// and the source calls it synchronously with the changed keys after the change is visible.
type Notifier interface {
	OnChange(onChange func(keys []string))
}

// Watcher is the interface that a Source implements if it needs a background routine
// to detect changes, for example polling a file.
//
// Watch blocks until ctx is done, or it returns an error,
// and calls onChange with the changed keys after the change is visible.
type Watcher interface {
	Watch(ctx context.Context, onChange func(keys []string)) error
}

// Provider discovers a batch of sources.
type Provider interface {
	Sources() ([]Source, error)
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func() ([]Source, error)

func (f ProviderFunc) Sources() ([]Source, error) {
	return f()
}

const (
	// DefaultOrdinal is the ordinal of sources that do not declare one.
	DefaultOrdinal = 100
	// OrdinalKey is the property a file based source reads its ordinal from.
	OrdinalKey = maps.OrdinalKey
)

func scannable(source Source) bool {
	if scanner, ok := source.(Scanner); ok {
		return scanner.Scannable()
	}

	return true
}
