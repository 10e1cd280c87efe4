// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package similartext formats "did you mean" suggestions for unknown
// function/procedure/identifier names, reconstructed from
// dolthub-go-mysql-server's own (source-stripped, test-only)
// internal/similartext package — its similartext_test.go survived and
// pins the exact suggestion format and threshold behavior below.
package similartext

import (
	"sort"
	"strings"

	text_distance "github.com/cypherql/cyphervalidate/internal/textdistance"
)

// maxSuggestDistance bounds how different a candidate may be from word and
// still be offered as a suggestion; beyond this the names are considered
// unrelated and no suggestion is produced.
const maxSuggestDistance = 3

// Find returns a ", maybe you mean X?" / ", maybe you mean X or Y?" suffix
// naming every entry in names tied for closest edit distance to word, or ""
// if names is empty, word is empty, or the closest match is still farther
// than maxSuggestDistance away.
func Find(names []string, word string) string {
	if len(names) == 0 || word == "" {
		return ""
	}
	return format(closest(names, word))
}

// FindFromMap is Find over a map's keys.
func FindFromMap(names map[string]int, word string) string {
	if len(names) == 0 || word == "" {
		return ""
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	return format(closest(keys, word))
}

func closest(names []string, word string) []string {
	type scored struct {
		name string
		dist int
	}

	scores := make([]scored, len(names))
	best := -1
	for i, n := range names {
		d := levenshtein(n, word)
		scores[i] = scored{n, d}
		if best == -1 || d < best {
			best = d
		}
	}

	if best > maxSuggestDistance {
		return nil
	}

	var out []string
	for _, s := range scores {
		if s.dist == best {
			out = append(out, s.name)
		}
	}
	sort.Strings(out)
	return out
}

func levenshtein(a, b string) int {
	// delegate to text_distance's distance metric, keeping one edit-distance
	// implementation in the module.
	return text_distance.Distance(a, b)
}

func format(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return ", maybe you mean " + strings.Join(candidates, " or ") + "?"
}
