// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package fs discovers configuration files in a file system.
//
// FS is a Provider that turns every file matching the given glob patterns into a static source,
// e.g. configuration files embedded into every module of an application.
// Files are parsed by their extension like the file package does,
// and each source reads its ordinal from the property `config_ordinal`, otherwise it is 100.
package fs

import (
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/nil-go/keyconf"
	"github.com/nil-go/keyconf/internal/format"
	imaps "github.com/nil-go/keyconf/internal/maps"
)

// FS is a Provider that discovers configuration files in a file system.
//
// To create a new FS, call [New].
type FS struct {
	fs        fs.FS
	patterns  []string
	unmarshal func([]byte) (map[string]string, error)
	ordinal   int
}

// New creates a FS with the given fs.FS, glob patterns and Option(s).
// If fs is nil, it uses the current working directory.
func New(fs fs.FS, patterns []string, opts ...Option) FS {
	option := &options{
		fs:       fs,
		patterns: slices.Clone(patterns),
		ordinal:  keyconf.DefaultOrdinal,
	}
	for _, opt := range opts {
		opt(option)
	}

	return FS(*option)
}

// Sources returns a source for every matching file, ordered by path.
func (f FS) Sources() ([]keyconf.Source, error) {
	ffs := f.fs
	if ffs == nil {
		// Ignore error: It uses whatever returned.
		path, _ := os.Getwd()
		ffs = os.DirFS(path)
	}

	var paths []string
	for _, pattern := range f.patterns {
		matches, err := fs.Glob(ffs, pattern)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	sources := make([]keyconf.Source, 0, len(paths))
	for _, path := range paths {
		values, err := f.load(ffs, path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{
			name:    "fs:///" + path,
			ordinal: imaps.Ordinal(values, f.ordinal),
			values:  values,
		})
	}

	return sources, nil
}

func (f FS) load(ffs fs.FS, path string) (map[string]string, error) {
	bytes, err := fs.ReadFile(ffs, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	unmarshal := f.unmarshal
	if unmarshal == nil {
		if unmarshal, err = format.For(path); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	values, err := unmarshal(bytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

type source struct {
	name    string
	ordinal int
	values  map[string]string
}

func (s source) Name() string {
	return s.name
}

func (s source) Ordinal() int {
	return s.ordinal
}

func (s source) Lookup(key string) (string, bool, error) {
	value, ok := s.values[key]

	return value, ok, nil
}

func (s source) Properties() (map[string]string, error) {
	return maps.Clone(s.values), nil
}
