// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package keyconf

import "github.com/nil-go/keyconf/internal/credential"

// Filter transforms property values after lookup, for example to decrypt them.
//
// FilterValue produces the value used for resolution.
// FilterValueForLog produces the value shown in logs and explanations,
// and never feeds back into resolution.
// A filter must not fail; it returns the value unchanged if it does not apply.
type Filter interface {
	FilterValue(key, value string) string
	FilterValueForLog(key, value string) string
}

// Redact returns a Filter that masks credentials in logs and explanations.
// A value is masked if its key looks like a credential
// or the value itself matches a well known secret format.
func Redact() Filter {
	return redact{}
}

type redact struct{}

func (redact) FilterValue(_, value string) string {
	return value
}

func (redact) FilterValueForLog(key, value string) string {
	return credential.Blur(key, value)
}
