// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import "slices"

// diff returns the sorted keys that are added, removed or changed from old to current.
func diff(old, current map[string]string) []string {
	var keys []string
	for key, value := range old {
		if v, ok := current[key]; !ok || v != value {
			keys = append(keys, key)
		}
	}
	for key := range current {
		if _, ok := old[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	return keys
}
