// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nil-go/keyconf/internal"
)

func TestNoCopy(t *testing.T) {
	t.Parallel()

	var registry registry
	registry.check()
	assert.NotPanics(t, registry.check)

	copied := registry //nolint:govet
	assert.PanicsWithValue(t, "illegal use of non-zero registry copied by value", copied.check)
}

type registry struct {
	nocopy internal.NoCopy[registry]
}

func (r *registry) check() {
	r.nocopy.Check()
}
