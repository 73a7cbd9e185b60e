// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package keyconf resolves named configuration properties from multiple prioritized sources
and converts them into typed values.

A [Config] owns a set of [Source], each with a name and an ordinal.
A key is resolved by the source with the highest ordinal that defines it,
and sources with the same ordinal are ordered by name.
The top-level functions [Value] and [OptionalValue] read a single property,
while [Access] builds an [Accessor] that adds defaults, ${key} variable evaluation,
lookup suffixes for tenant or stage specific overrides, and caching
that is invalidated by change notifications of the sources.

Raw values are converted by a registry of converters:
custom converters by priority, built-in converters for Go's basic types,
converters derived from encoding.TextUnmarshaler or a Set(string) error method,
and comma separated lists for slices, arrays and sets.

There is a default Config accessible through [Get] after [SetDefault] is called.
Sources live in the provider packages, such as environment variables, files and flags.
*/
package keyconf
