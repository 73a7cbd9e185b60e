// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nil-go/keyconf/internal/convert"
)

// Flatten converts a nested document into a flat map whose keys are joined by delimiter.
// Lists of scalars are joined into an escaped comma separated value,
// while lists containing maps are flattened with the element index as key segment.
func Flatten(values map[string]any, delimiter string) map[string]string {
	flat := make(map[string]string)
	flatten(flat, "", values, delimiter)

	return flat
}

func flatten(dst map[string]string, prefix string, value any, delimiter string) { //nolint:cyclop
	join := func(key string) string {
		if prefix == "" {
			return key
		}

		return prefix + delimiter + key
	}

	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(dst, join(key), val, delimiter)
		}
	case map[any]any:
		for key, val := range v {
			flatten(dst, join(fmt.Sprint(key)), val, delimiter)
		}
	case []map[string]any:
		for i, val := range v {
			flatten(dst, join(strconv.Itoa(i)), val, delimiter)
		}
	case []any:
		scalars := make([]string, 0, len(v))
		for i, val := range v {
			switch val.(type) {
			case map[string]any, map[any]any, []any:
				flatten(dst, join(strconv.Itoa(i)), val, delimiter)
			default:
				scalars = append(scalars, scalar(val))
			}
		}
		if len(scalars) > 0 || len(v) == 0 {
			dst[prefix] = convert.Join(scalars)
		}
	default:
		if prefix != "" {
			dst[prefix] = scalar(v)
		}
	}
}

func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
