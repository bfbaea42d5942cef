package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/praxis/ai/mock"
	"github.com/poiesic/praxis/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) (*Analyzer, *mock.MockEmbedder) {
	t.Helper()
	embedder := mock.NewMockEmbedderWithDimension(8)
	a, err := NewAnalyzer(embedder)
	require.NoError(t, err)
	return a, embedder
}

func TestNewAnalyzer(t *testing.T) {
	_, err := NewAnalyzer(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewAnalyzer(mock.NewMockEmbedder(), WithLexicon(nil))
	assert.ErrorIs(t, err, ErrEmptyLexicon)
}

func TestAnalyzeText(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	text := "Je suis très stressé et j'ai mal au dos"

	got, err := a.AnalyzeText(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, text, got.Text)
	assert.Equal(t, []core.SymptomMatch{
		{Category: "stress", Keyword: "stress"},
		{Category: "douleur", Keyword: "mal"},
	}, got.Symptoms)
	assert.Equal(t, []string{"stress", "douleur"}, got.Categories())
	assert.Equal(t, []string{"stresse", "mal", "dos"}, got.Keywords)
	assert.Equal(t, UrgencyLow, got.Urgency)
	assert.Equal(t, mock.Vector(text, 8), got.Embedding)
}

func TestAnalyzeText_SymptomOrder(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	got, err := a.AnalyzeText(context.Background(),
		"Je n'arrive plus à dormir, je fais des cauchemars et j'ai mal de ventre")
	require.NoError(t, err)

	assert.Equal(t, []core.SymptomMatch{
		{Category: "douleur", Keyword: "mal"},
		{Category: "sommeil", Keyword: "dormir"},
		{Category: "sommeil", Keyword: "cauchemar"},
		{Category: "digestion", Keyword: "ventre"},
		{Category: "digestion", Keyword: "mal de ventre"},
	}, got.Symptoms)
	assert.Equal(t, []string{"douleur", "sommeil", "digestion"}, got.Categories())
}

func TestAnalyzeText_Blank(t *testing.T) {
	a, embedder := newTestAnalyzer(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		got, err := a.AnalyzeText(context.Background(), text)
		require.NoError(t, err)
		assert.Zero(t, got.Urgency)
		assert.Nil(t, got.Embedding)
		assert.Empty(t, got.Symptoms)
		assert.Empty(t, got.Keywords)
	}
	assert.Zero(t, embedder.CallCount())
}

func TestAnalyzeText_EmbeddingError(t *testing.T) {
	a, embedder := newTestAnalyzer(t)
	boom := errors.New("embedding server down")
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, boom
	}

	_, err := a.AnalyzeText(context.Background(), "je suis stressé")
	assert.ErrorIs(t, err, boom)
}

func TestAssessUrgency(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"j'ai une douleur insupportable au ventre", UrgencyHigh},
		{"c'est urgent", UrgencyHigh},
		{"mon sommeil est agité, c'est gênant", UrgencyMedium},
		{"une gêne modérée", UrgencyMedium},
		{"un léger souci", UrgencyLow},
		{"bonjour", UrgencyLow},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessUrgency(tt.text))
		})
	}
}

func TestIdentifySymptoms_CustomLexicon(t *testing.T) {
	a, err := NewAnalyzer(mock.NewMockEmbedder(), WithLexicon(Lexicon{
		{Name: "respiration", Keywords: []string{"souffle", "short_breath", "souffle"}},
	}))
	require.NoError(t, err)

	got := a.IdentifySymptoms("j'ai le souffle court, short breath")
	assert.Equal(t, []core.SymptomMatch{
		{Category: "respiration", Keyword: "souffle"},
		{Category: "respiration", Keyword: "short_breath"},
	}, got)

	assert.Empty(t, a.IdentifySymptoms("rien à signaler"))
}

func TestAnalyzeQuestionnaire(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	q := NewQuestionnaire(
		Answer{Key: "main_concern", Values: []string{"stress_anxiety", "sleep_issues"}},
		Answer{Key: "pain_location", Values: []string{"back"}},
		Answer{Key: "intensity", Values: []string{"7"}},
	)

	got, err := a.AnalyzeQuestionnaire(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "préoccupation principale est stress anxiety, sleep issues. localisation de la douleur est back. intensity est 7.", got.Text)
	assert.Equal(t, []string{"stress", "douleur", "sommeil"}, got.Categories())
	assert.Equal(t, UrgencyLow, got.Urgency)
	assert.NotNil(t, got.Embedding)
}

func TestAnalyzeQuestionnaire_Empty(t *testing.T) {
	a, embedder := newTestAnalyzer(t)

	got, err := a.AnalyzeQuestionnaire(context.Background(), NewQuestionnaire())
	require.NoError(t, err)
	assert.Nil(t, got.Embedding)
	assert.Zero(t, embedder.CallCount())
}
