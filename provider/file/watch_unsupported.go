// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build appengine || !(darwin || dragonfly || freebsd || openbsd || linux || netbsd || solaris || windows)

package file

import (
	"context"
	"runtime"
)

func (f *File) Watch(ctx context.Context, _ func([]string)) error {
	f.logger.WarnContext(ctx, "File.Watch does not supported.", "os", runtime.GOOS)

	return nil
}
