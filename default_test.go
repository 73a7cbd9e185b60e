// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/keyconf"
)

//nolint:paralleltest
func TestGet(t *testing.T) {
	buf := new(buffer)
	config, err := keyconf.New(
		keyconf.WithSource(mapSource{name: "map", values: map[string]string{"config": "string"}}),
		keyconf.WithLogHandler(logHandler(buf)),
	)
	require.NoError(t, err)
	keyconf.SetDefault(config)
	defer func() {
		require.NoError(t, keyconf.Release())
	}()

	assert.Same(t, config, keyconf.Default())
	assert.Equal(t, "string", keyconf.Get[string]("config"))
	assert.Empty(t, keyconf.Get[string]("missing"))
	assert.Empty(t, buf.String())

	assert.Zero(t, keyconf.Get[int]("config"))
	expected := `level=ERROR msg="Could not read config, return empty value instead."` +
		` error="convert config to int: cannot parse \"string\" as int: strconv.ParseInt: parsing \"string\": invalid syntax"` +
		" key=config type=int\n"
	assert.Equal(t, expected, buf.String())
}

//nolint:paralleltest
func TestRelease(t *testing.T) {
	source := &closeableSource{mapSource: mapSource{name: "closeable"}, err: errors.New("close error")}
	config, err := keyconf.New(keyconf.WithSource(source))
	require.NoError(t, err)
	keyconf.SetDefault(config)

	require.EqualError(t, keyconf.Release(), "close source closeable: close error")
	assert.Equal(t, 1, source.closed)
	assert.Nil(t, keyconf.Default())
	assert.Empty(t, keyconf.Get[string]("config"))

	require.NoError(t, keyconf.Release())
}
