// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package flag_test

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/keyconf"
	kflag "github.com/nil-go/keyconf/provider/flag"
)

var _ keyconf.Source = kflag.Flag{}

func TestFlag(t *testing.T) {
	t.Parallel()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("p.k", "", "")
	set.String("p.d", ".", "")
	set.Int("p.i", 0, "")
	set.String("q.k", "", "")
	require.NoError(t, set.Parse([]string{"-p.k=v", "-q.k=x"}))

	testcases := []struct {
		description string
		opts        []kflag.Option
		expected    map[string]string
	}{
		{
			description: "set flags",
			expected: map[string]string{
				"p.k": "v",
				"q.k": "x",
			},
		},
		{
			description: "with prefix",
			opts:        []kflag.Option{kflag.WithPrefix("p.")},
			expected: map[string]string{
				"p.k": "v",
			},
		},
		{
			description: "with defaults",
			opts:        []kflag.Option{kflag.WithPrefix("p."), kflag.WithDefaults()},
			expected: map[string]string{
				"p.k": "v",
				"p.d": ".",
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			source := kflag.New(append(testcase.opts, kflag.WithFlagSet(set))...)

			values, err := source.Properties()
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, values)

			for _, key := range []string{"p.k", "p.d", "p.i", "q.k", "missing"} {
				expected, ok := testcase.expected[key]
				value, found, err := source.Lookup(key)
				require.NoError(t, err)
				assert.Equal(t, ok, found, key)
				assert.Equal(t, expected, value, key)
			}
		})
	}
}

func TestFlag_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "flag", kflag.New().Name())
	assert.Equal(t, "flag:p.", kflag.New(kflag.WithPrefix("p.")).Name())
	assert.Equal(t, 500, kflag.New().Ordinal())
	assert.Equal(t, 10, kflag.New(kflag.WithOrdinal(10)).Ordinal())
}

func TestFlag_config(t *testing.T) {
	t.Parallel()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.Int("server.port", 8080, "")
	require.NoError(t, set.Parse([]string{"-server.port=9090"}))

	config, err := keyconf.New(
		keyconf.WithSource(kflag.New(kflag.WithFlagSet(set))),
	)
	require.NoError(t, err)
	port, err := keyconf.Value[int](config, "server.port")
	require.NoError(t, err)
	assert.Equal(t, 9090, port)
}
