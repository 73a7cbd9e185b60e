// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package internal holds helpers shared by the keyconf packages.
package internal

import (
	"reflect"
	"sync/atomic"
)

// NoCopy panics on Check if the struct embedding it has been copied after first use.
// Embed it as the first field of T.
type NoCopy[T any] struct {
	addr atomic.Pointer[NoCopy[T]]
}

func (c *NoCopy[T]) Check() {
	if c.addr.CompareAndSwap(nil, c) {
		return
	}

	if c.addr.Load() != c {
		panic("illegal use of non-zero " + reflect.TypeFor[T]().Name() + " copied by value")
	}
}
