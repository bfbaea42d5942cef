// Copyright 2025 Poiesic Systems
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


package fuzzy

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// Threshold is the score a PartialRatio must exceed for Matches to accept.
const Threshold = 80

// PartialRatio returns the best similarity, scaled to 0-100, between the
// shorter string and any equally long window of the longer string.
//
// Windows are anchored on the matching blocks found by a sequence matcher,
// the same alignment used by the classic partial_ratio scorer. Lengths are
// measured in runes. When both strings have the same length the first
// argument is treated as the shorter one.
func PartialRatio(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	if s1 == "" || s2 == "" {
		return 0
	}

	shorter, longer := runes(s1), runes(s2)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	matcher := difflib.NewMatcher(shorter, longer)
	best := 0.0
	for _, block := range matcher.GetMatchingBlocks() {
		start := block.B - block.A
		if start < 0 {
			start = 0
		}
		end := start + len(shorter)
		if end > len(longer) {
			end = len(longer)
		}

		ratio := difflib.NewMatcher(shorter, longer[start:end]).Ratio()
		if ratio > 0.995 {
			return 100
		}
		if ratio > best {
			best = ratio
		}
	}

	return int(math.RoundToEven(100 * best))
}

// runes splits s into one-rune strings for the sequence matcher.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
