package recommend

import (
	"testing"

	"github.com/poiesic/praxis/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitors(t *testing.T) {
	t.Run("no monitors", func(t *testing.T) {
		assert.IsType(t, &noopMonitor{}, Monitors())
		assert.IsType(t, &noopMonitor{}, Monitors(nil, nil))
	})

	t.Run("single monitor is returned as is", func(t *testing.T) {
		recorder := NewRecorder()
		assert.Same(t, recorder, Monitors(nil, recorder))
	})

	t.Run("fans out every hook", func(t *testing.T) {
		first, second := NewRecorder(), NewRecorder()
		r := newTestRecommender(t, &stubPractices{}, &stubFeedback{}, WithMonitor(Monitors(first, nil, second)))

		catalog := []*core.Practice{
			practice("Missing", nil, nil, nil),
			practice("Good", []float32{1, 0}, nil, nil),
		}
		results := r.Rank(analysisOf(0, []float32{1, 0}), catalog, nil)
		require.Len(t, results, 1)

		for _, rec := range []*Recorder{first, second} {
			assert.ErrorIs(t, rec.SkipReason("Missing"), core.ErrEmptyVector)
			b, ok := rec.Breakdown("Good")
			require.True(t, ok)
			assert.InDelta(t, 0.5, b.Score, 1e-9)
		}
	})
}
