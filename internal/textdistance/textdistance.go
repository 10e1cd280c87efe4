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

// Package text_distance computes Levenshtein edit distance between short
// identifier-like strings, reconstructed from dolthub-go-mysql-server's own
// (source-stripped, test-only) internal/text_distance package — its
// text_distance_test.go survived and pins FindSimilarName's exact
// argmin-with-first-tie-wins behavior and FindSimilarNameFromMap's argmin.
package text_distance

// Distance computes the Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	return distance(a, b)
}

// distance computes the Levenshtein edit distance between a and b.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// FindSimilarName returns the name in names closest (by edit distance) to
// word. Ties keep the first candidate encountered in names' order. Returns
// "" if names is empty.
func FindSimilarName(names []string, word string) string {
	if len(names) == 0 {
		return ""
	}

	best := names[0]
	bestDist := distance(names[0], word)
	for _, n := range names[1:] {
		if d := distance(n, word); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// FindSimilarNameFromMap is FindSimilarName over a map's keys. Which of
// several equally close keys is returned depends on map iteration order and
// is not defined.
func FindSimilarNameFromMap(names map[string]int, word string) string {
	if len(names) == 0 {
		return ""
	}

	var best string
	bestDist := -1
	for n := range names {
		d := distance(n, word)
		if bestDist == -1 || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
