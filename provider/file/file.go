// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package file resolves configuration from an OS file.
//
// File loads a file with the given path from the OS file system and flattens it
// into properties whose nested keys are joined by `.`, e.g. `{server: {port: 8080}}`
// is loaded as `server.port=8080`. Lists of scalars are joined into comma separated values.
//
// The format is chosen by the file extension: .properties, .yaml, .yml, .toml, .json or .env.
// WithUnmarshal overrides it for other formats.
//
// The ordinal of the File is the value of the property `config_ordinal` if it is defined,
// otherwise it is 100.
//
// By default, it returns error while loading if the file is not found.
// IgnoreFileNotExist can override the behavior to load no properties.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"sync/atomic"

	"github.com/nil-go/keyconf"
	"github.com/nil-go/keyconf/internal/format"
	imaps "github.com/nil-go/keyconf/internal/maps"
)

// File is a Source that resolves configuration from a OS file.
//
// To create a new File, call [New].
type File struct {
	logger         *slog.Logger
	path           string
	unmarshal      func([]byte) (map[string]string, error)
	ignoreNotExist bool
	ordinal        int

	values atomic.Pointer[map[string]string]
}

// New creates a File with the given path and Option(s), and loads the file.
//
// It panics if the path is empty.
func New(path string, opts ...Option) (*File, error) {
	if path == "" {
		panic("cannot create File with empty path")
	}

	option := &options{
		path:    path,
		ordinal: keyconf.DefaultOrdinal,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("keyconf.file")
	if option.unmarshal == nil {
		unmarshal, err := format.For(path)
		if err != nil {
			return nil, fmt.Errorf("create file source %s: %w", path, err)
		}
		option.unmarshal = unmarshal
	}

	file := &File{
		logger:         option.logger,
		path:           option.path,
		unmarshal:      option.unmarshal,
		ignoreNotExist: option.ignoreNotExist,
		ordinal:        option.ordinal,
	}
	values, err := file.load()
	if err != nil {
		return nil, err
	}
	file.values.Store(&values)

	return file, nil
}

func (f *File) load() (map[string]string, error) {
	bytes, err := os.ReadFile(f.path)
	if err != nil {
		if f.ignoreNotExist && errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("Config file does not exist.", "file", f.path)

			return make(map[string]string), nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	values, err := f.unmarshal(bytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", f.path, err)
	}
	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

func (f *File) Name() string {
	return "file:" + f.path
}

func (f *File) Ordinal() int {
	return imaps.Ordinal(*f.values.Load(), f.ordinal)
}

func (f *File) Lookup(key string) (string, bool, error) {
	value, ok := (*f.values.Load())[key]

	return value, ok, nil
}

func (f *File) Properties() (map[string]string, error) {
	return maps.Clone(*f.values.Load()), nil
}
