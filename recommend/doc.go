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


// Package recommend ranks the practice catalog against a user analysis.
//
// Every practice is scored from four signals:
//
//	raw   = 0.5*cosine(analysis, practice) + 0.5*symptom_matches
//	score = raw * (1 + urgency) * feedback_weight
//
// Symptom matches count the analysis categories found among the practice's
// primary and secondary conditions, plus one for each category that fuzzily
// matches a practice symptom keyword. Only strictly positive scores are
// kept. Results are sorted by score, ties keep catalog order, and the first
// N are returned.
//
// Rank is a pure function of its inputs. Recommend loads the catalog and the
// feedback history concurrently, then calls Rank.
package recommend
