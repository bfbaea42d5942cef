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


package retrieval

import (
	"cmp"
	"math"
	"slices"

	"github.com/poiesic/praxis/textproc"
)

// BM25 Okapi parameters.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// bm25Index is an immutable Okapi BM25 index. Terms whose idf would be
// negative get epsilon times the average idf instead.
type bm25Index struct {
	termFreqs []map[string]int
	docLens   []int
	avgDocLen float64
	idf       map[string]float64
}

// scoredDoc is the score of the document at position doc in the corpus.
type scoredDoc struct {
	doc   int
	score float64
}

func newBM25Index(texts []string) (*bm25Index, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyCorpus
	}

	idx := &bm25Index{
		termFreqs: make([]map[string]int, len(texts)),
		docLens:   make([]int, len(texts)),
	}

	docFreq := make(map[string]int)
	totalLen := 0
	for i, text := range texts {
		terms := textproc.Terms(text)
		freqs := make(map[string]int, len(terms))
		for _, term := range terms {
			freqs[term]++
		}
		for term := range freqs {
			docFreq[term]++
		}
		idx.termFreqs[i] = freqs
		idx.docLens[i] = len(terms)
		totalLen += len(terms)
	}
	idx.avgDocLen = float64(totalLen) / float64(len(texts))

	n := float64(len(texts))
	idx.idf = make(map[string]float64, len(docFreq))
	var idfSum float64
	var negative []string
	for term, freq := range docFreq {
		idf := math.Log(n-float64(freq)+0.5) - math.Log(float64(freq)+0.5)
		idx.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	if len(idx.idf) > 0 {
		floor := bm25Epsilon * idfSum / float64(len(idx.idf))
		for _, term := range negative {
			idx.idf[term] = floor
		}
	}

	return idx, nil
}

// size returns the number of indexed documents.
func (idx *bm25Index) size() int {
	return len(idx.docLens)
}

// score returns the BM25 score of every document for the query terms.
// Repeated query terms count once per occurrence.
func (idx *bm25Index) score(query []string) []float64 {
	scores := make([]float64, idx.size())
	if idx.avgDocLen == 0 {
		return scores
	}
	for _, term := range query {
		idf, ok := idx.idf[term]
		if !ok {
			continue
		}
		for i, freqs := range idx.termFreqs {
			tf := float64(freqs[term])
			if tf == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(idx.docLens[i])/idx.avgDocLen
			scores[i] += idf * tf * (bm25K1 + 1) / (tf + bm25K1*norm)
		}
	}
	return scores
}

// top returns the k best documents sharing at least one term with the
// query, by score descending with ties in corpus order.
func (idx *bm25Index) top(query []string, k int) []scoredDoc {
	scores := idx.score(query)

	hits := make([]scoredDoc, 0, min(k, len(scores)))
	for i, s := range scores {
		if idx.matches(i, query) {
			hits = append(hits, scoredDoc{doc: i, score: s})
		}
	}
	slices.SortStableFunc(hits, func(a, b scoredDoc) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func (idx *bm25Index) matches(doc int, query []string) bool {
	for _, term := range query {
		if idx.termFreqs[doc][term] > 0 {
			return true
		}
	}
	return false
}
