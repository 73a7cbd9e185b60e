// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/keyconf/internal/format"
)

func TestFor(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		name        string
		data        string
		expected    map[string]string
		err         string
	}{
		{
			description: "properties",
			name:        "config.properties",
			data:        "host = http://localhost:8081\nurl=${host}/path\n# comment\nlist=dog,cat,dog\\\\,cat\n",
			expected: map[string]string{
				"host": "http://localhost:8081",
				"url":  "${host}/path",
				"list": `dog,cat,dog\,cat`,
			},
		},
		{
			description: "yaml",
			name:        "config.yaml",
			data:        "server:\n  host: example.com\n  port: 8080\n  tags: [a, 'b,c']\nconfig_ordinal: 200\n",
			expected: map[string]string{
				"server.host":    "example.com",
				"server.port":    "8080",
				"server.tags":    `a,b\,c`,
				"config_ordinal": "200",
			},
		},
		{
			description: "yml",
			name:        "CONFIG.YML",
			data:        "enabled: true\n",
			expected:    map[string]string{"enabled": "true"},
		},
		{
			description: "toml",
			name:        "config.toml",
			data:        "[server]\nhost = \"example.com\"\nport = 8080\n",
			expected: map[string]string{
				"server.host": "example.com",
				"server.port": "8080",
			},
		},
		{
			description: "json",
			name:        "config.json",
			data:        `{"server": {"host": "example.com", "port": 8080, "ratio": 0.5}, "nodes": [{"id": 1}]}`,
			expected: map[string]string{
				"server.host":  "example.com",
				"server.port":  "8080",
				"server.ratio": "0.5",
				"nodes.0.id":   "1",
			},
		},
		{
			description: "dotenv",
			name:        ".env",
			data:        "DB_HOST=localhost\nexport DB_PORT=5432\n",
			expected: map[string]string{
				"DB_HOST": "localhost",
				"DB_PORT": "5432",
			},
		},
		{
			description: "invalid json",
			name:        "config.json",
			data:        `{`,
			err:         "unmarshal json: unexpected EOF",
		},
		{
			description: "unsupported",
			name:        "config.ini",
			err:         `unsupported format: ".ini"`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			unmarshal, err := format.For(testcase.name)
			var values map[string]string
			if err == nil {
				values, err = unmarshal([]byte(testcase.data))
			}
			if testcase.err != "" {
				require.EqualError(t, err, testcase.err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, values)
		})
	}
}
