// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package suffix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nil-go/keyconf/internal/suffix"
)

func TestCandidates(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		suffixes    []string
		expected    []string
	}{
		{
			description: "no suffix",
			expected:    []string{"base"},
		},
		{
			description: "one suffix",
			suffixes:    []string{"tenant"},
			expected:    []string{"base.tenant", "base"},
		},
		{
			description: "two suffixes",
			suffixes:    []string{"tenant", "stage"},
			expected:    []string{"base.tenant.stage", "base.tenant", "base.stage", "base"},
		},
		{
			description: "three suffixes",
			suffixes:    []string{"a", "b", "c"},
			expected: []string{
				"base.a.b.c", "base.a.b", "base.a.c", "base.a",
				"base.b.c", "base.b", "base.c", "base",
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, suffix.Candidates("base", testcase.suffixes))
		})
	}
}
