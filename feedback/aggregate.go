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


// Package feedback turns user ratings into per-practice score adjustments.
package feedback

import (
	"github.com/poiesic/praxis/core"
)

const (
	// SaturationCount is the number of ratings at which feedback reaches full confidence.
	SaturationCount = 50

	// NeutralRating is the rating that leaves a score unchanged.
	NeutralRating = 3

	// NeutralWeight is the weight of a practice without feedback.
	NeutralWeight = 1.0
)

// Stats maps practice names to their aggregated feedback.
// Practices without feedback are absent.
type Stats map[string]core.FeedbackStat

// Aggregate groups feedback by practice name and computes count and average
// rating in a single pass. Ratings outside 1..5 are ignored.
func Aggregate(records []*core.Feedback) Stats {
	type acc struct {
		count int
		sum   int
	}
	sums := make(map[string]*acc)
	for _, record := range records {
		if record == nil || !core.IsValidRating(record.Rating) {
			continue
		}
		a, ok := sums[record.PracticeName]
		if !ok {
			a = &acc{}
			sums[record.PracticeName] = a
		}
		a.count++
		a.sum += record.Rating
	}

	stats := make(Stats, len(sums))
	for name, a := range sums {
		stats[name] = core.FeedbackStat{
			Count:     a.count,
			AvgRating: float64(a.sum) / float64(a.count),
		}
	}
	return stats
}

// Weight converts a feedback summary into a score multiplier in [0, 2].
//
//	confidence    = min(count/50, 1)
//	rating_factor = (avg - 3) / 2
//	weight        = 1 + rating_factor * confidence
func Weight(stat core.FeedbackStat) float64 {
	if stat.Count <= 0 {
		return NeutralWeight
	}
	confidence := min(float64(stat.Count)/SaturationCount, 1.0)
	ratingFactor := (stat.AvgRating - NeutralRating) / 2
	return NeutralWeight + ratingFactor*confidence
}

// WeightFor returns the weight of the named practice, or NeutralWeight when
// it has no feedback.
func (s Stats) WeightFor(practiceName string) float64 {
	stat, ok := s[practiceName]
	if !ok {
		return NeutralWeight
	}
	return Weight(stat)
}
