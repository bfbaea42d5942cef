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


// Package retrieval finds knowledge base documents for a query.
//
// Two retrievers are provided:
//   - DenseRetriever embeds the query and ranks stored documents by cosine similarity
//   - SparseRetriever ranks an in-memory BM25 index built from the corpus
//
// Ensemble runs both concurrently and merges their rankings with weighted
// reciprocal rank fusion:
//
//	score(d) = Σ weight_i / (rank_i(d) + 60)
//
// where rank_i(d) is the 1-based position of d in list i. Documents are
// identified by ID, or by content when the ID is zero. When one retriever
// fails the other's results are used; when both fail the call fails.
//
// Usage:
//
//	dense, _ := retrieval.NewDenseRetriever(provider.Embedder(), repos.Documents)
//	sparse, _ := retrieval.NewSparseRetrieverFromRepository(ctx, repos.Documents)
//	ensemble, _ := retrieval.NewEnsemble(dense, sparse, retrieval.WithK(5))
//	results, err := ensemble.Retrieve(ctx, "sommeil et anxiété", 0)
package retrieval
