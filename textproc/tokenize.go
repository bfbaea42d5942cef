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


package textproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minKeywordLength is the shortest token Keywords keeps.
const minKeywordLength = 3

// Fold normalizes text for comparison: NFKC, case folding, no diacritics.
func Fold(text string) string {
	// transform.Chain is stateful, so each call builds its own.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = norm.NFKC.String(text)
	}
	return cases.Fold().String(folded)
}

// Tokenize folds text and splits it into letter/digit runs.
func Tokenize(text string) []string {
	return strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Terms tokenizes text and removes stop words. Repeated terms are kept so
// term frequencies survive.
func Terms(text string) []string {
	tokens := Tokenize(text)
	filtered := tokens[:0]
	for _, token := range tokens {
		if !IsStopWord(token) {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

// Keywords returns the distinct content words of text in first-seen order.
// Stop words and tokens shorter than three runes are dropped.
func Keywords(text string) []string {
	terms := Terms(text)
	seen := make(map[string]struct{}, len(terms))
	keywords := make([]string, 0, len(terms))
	for _, term := range terms {
		if len([]rune(term)) < minKeywordLength {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}
	return keywords
}

// ContainsAllTerms reports whether every term of query appears in document.
// A query without terms never matches.
func ContainsAllTerms(document, query string) bool {
	queryTerms := Terms(query)
	if len(queryTerms) == 0 {
		return false
	}

	docTerms := Terms(document)
	docTermSet := make(map[string]bool, len(docTerms))
	for _, term := range docTerms {
		docTermSet[term] = true
	}

	for _, term := range queryTerms {
		if !docTermSet[term] {
			return false
		}
	}
	return true
}
