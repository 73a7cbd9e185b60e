// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package pflag resolves configuration from flags defined by [spf13/pflag].
//
// PFlag resolves a key by the flag with the same name in [pflag.CommandLine].
// Only flags set in the command line are resolved, so the default values of flags
// do not override values of other sources. WithDefaults also resolves unchanged flags.
// Values of slice flags are joined into comma separated values, escaping commas in elements.
//
// The default ordinal of PFlag is 500, which is higher than the other sources.
//
// [spf13/pflag]: https://github.com/spf13/pflag
package pflag

import (
	"flag"
	"strings"

	"github.com/spf13/pflag"

	"github.com/nil-go/keyconf/internal/convert"
)

// PFlag is a Source that resolves configuration from flags defined by [spf13/pflag].
//
// To create a new PFlag, call [New].
type PFlag struct {
	prefix   string
	set      *pflag.FlagSet
	defaults bool
	ordinal  int
}

// New creates a PFlag with the given Option(s).
func New(opts ...Option) PFlag {
	option := &options{
		ordinal: defaultOrdinal,
	}
	for _, opt := range opts {
		opt(option)
	}

	return PFlag(*option)
}

func (f PFlag) Name() string {
	if f.prefix == "" {
		return "pflag"
	}

	return "pflag:" + f.prefix
}

func (f PFlag) Ordinal() int {
	return f.ordinal
}

func (f PFlag) Lookup(key string) (string, bool, error) {
	if !strings.HasPrefix(key, f.prefix) {
		return "", false, nil
	}

	flag := f.flagSet().Lookup(key)
	if flag == nil || !flag.Changed && !f.defaults {
		return "", false, nil
	}

	return value(flag), true, nil
}

func (f PFlag) Properties() (map[string]string, error) {
	values := make(map[string]string)
	f.flagSet().VisitAll(
		func(flag *pflag.Flag) {
			if !strings.HasPrefix(flag.Name, f.prefix) {
				return
			}
			if !flag.Changed && !f.defaults {
				return
			}
			values[flag.Name] = value(flag)
		},
	)

	return values, nil
}

func (f PFlag) flagSet() *pflag.FlagSet {
	if f.set != nil {
		return f.set
	}

	if !pflag.Parsed() {
		pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
		pflag.Parse()
	}

	return pflag.CommandLine
}

func value(flag *pflag.Flag) string {
	if slice, ok := flag.Value.(pflag.SliceValue); ok {
		return convert.Join(slice.GetSlice())
	}

	return flag.Value.String()
}

const defaultOrdinal = 500
