// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package flag resolves configuration from flags defined by the standard [flag] package.
//
// Flag resolves a key by the flag with the same name in [flag.CommandLine].
// Only flags set in the command line are resolved unless WithDefaults is given,
// which also resolves unset flags whose default value is not the zero value.
//
// The default ordinal of Flag is 500, the same as the pflag package.
package flag

import (
	"errors"
	"flag"
	"fmt"
	"reflect"
	"strings"
)

// Flag is a Source that resolves configuration from flags.
//
// To create a new Flag, call [New].
type Flag struct {
	prefix   string
	set      *flag.FlagSet
	defaults bool
	ordinal  int
}

// New creates a Flag with the given Option(s).
func New(opts ...Option) Flag {
	option := &options{
		ordinal: defaultOrdinal,
	}
	for _, opt := range opts {
		opt(option)
	}

	return Flag(*option)
}

func (f Flag) Name() string {
	if f.prefix == "" {
		return "flag"
	}

	return "flag:" + f.prefix
}

func (f Flag) Ordinal() int {
	return f.ordinal
}

func (f Flag) Lookup(key string) (string, bool, error) {
	if !strings.HasPrefix(key, f.prefix) {
		return "", false, nil
	}

	set := f.flagSet()
	flg := set.Lookup(key)
	if flg == nil {
		return "", false, nil
	}
	if isSet(set, key) {
		return flg.Value.String(), true, nil
	}
	if !f.defaults {
		return "", false, nil
	}
	zero, err := isZeroValue(flg, flg.DefValue)
	if err != nil || zero {
		return "", false, err
	}

	return flg.Value.String(), true, nil
}

func (f Flag) Properties() (map[string]string, error) {
	set := f.flagSet()
	values := make(map[string]string)
	set.Visit(func(flg *flag.Flag) {
		if strings.HasPrefix(flg.Name, f.prefix) {
			values[flg.Name] = flg.Value.String()
		}
	})
	if !f.defaults {
		return values, nil
	}

	var errs []error
	set.VisitAll(func(flg *flag.Flag) {
		if _, ok := values[flg.Name]; ok || !strings.HasPrefix(flg.Name, f.prefix) {
			return
		}
		// Skip zero default value to avoid overriding values set by other sources.
		zero, err := isZeroValue(flg, flg.DefValue)
		if err != nil {
			errs = append(errs, err)
		}
		if !zero {
			values[flg.Name] = flg.Value.String()
		}
	})
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return values, nil
}

func (f Flag) flagSet() *flag.FlagSet {
	if f.set != nil {
		return f.set
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return flag.CommandLine
}

func isSet(set *flag.FlagSet, name string) bool {
	found := false
	set.Visit(func(flg *flag.Flag) {
		if flg.Name == name {
			found = true
		}
	})

	return found
}

// isZeroValue determines whether the string represents the zero
// value for a flag.
func isZeroValue(flg *flag.Flag, value string) (ok bool, err error) { //nolint:nonamedreturns
	// Build a zero value of the flag's Value type, and see if the
	// result of calling its String method equals the value passed in.
	// This works unless the Value type is itself an interface type.
	typ := reflect.TypeOf(flg.Value)
	var val reflect.Value
	if typ.Kind() == reflect.Pointer {
		val = reflect.New(typ.Elem())
	} else {
		val = reflect.Zero(typ)
	}

	// Catch panics calling the String method, which shouldn't prevent
	// other flags from being resolved.
	defer func() {
		if msg := recover(); msg != nil {
			if typ.Kind() == reflect.Pointer {
				typ = typ.Elem()
			}
			err = fmt.Errorf( //nolint:err113
				"panic calling String method on zero %v for flag %s: %v",
				typ, flg.Name, msg,
			)
		}
	}()

	return value == val.Interface().(flag.Value).String(), nil //nolint:forcetypeassert
}

const defaultOrdinal = 500
