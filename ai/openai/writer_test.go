package openai

import (
	"context"
	"testing"

	"github.com/poiesic/praxis/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAdvicePrompt(t *testing.T) {
	prompt := buildAdvicePrompt("stress, sommeil", []string{"Sophrologie", "Yoga"}, "CONTEXTE POUR Sophrologie:\n...")

	assert.Contains(t, prompt, "Pratiques recommandées par le premier système : Sophrologie, Yoga")
	assert.Contains(t, prompt, "Besoins exprimés (détectés par l'analyse NLP) : stress, sommeil")
	assert.Contains(t, prompt, "# Recommandation Personnalisée : Sophrologie et Yoga")
	assert.Contains(t, prompt, "CONTEXTE POUR Sophrologie:")
	assert.NotContains(t, prompt, "{practice_name_1}")
	assert.NotContains(t, prompt, "{retrieved_documents}")
}

func TestBuildAdvicePrompt_ContextIsNotExpanded(t *testing.T) {
	prompt := buildAdvicePrompt("fatigue", []string{"A", "B"}, "texte avec {user_needs} littéral")
	assert.Contains(t, prompt, "texte avec {user_needs} littéral")
}

func TestWriteAdvice(t *testing.T) {
	model := &fakeModel{answers: []string{"  # Recommandation Personnalisée : A et B\n"}}
	writer := newAdviceWriterWithModel(model, 0.5)

	got, err := writer.WriteAdvice(context.Background(), ai.AdviceRequest{
		Needs:     "stress",
		Practices: []string{"A", "B", "C"},
		Context:   "contexte",
	})
	require.NoError(t, err)
	assert.Equal(t, "# Recommandation Personnalisée : A et B", got)
	assert.Equal(t, 0.5, model.options.Temperature)
	assert.Contains(t, model.lastPrompt(), "Pratiques recommandées par le premier système : A, B")
}

func TestWriteAdvice_Errors(t *testing.T) {
	writer := newAdviceWriterWithModel(&fakeModel{answers: []string{"   "}}, 0.5)

	_, err := writer.WriteAdvice(context.Background(), ai.AdviceRequest{Practices: []string{"A"}})
	assert.Error(t, err)

	_, err = writer.WriteAdvice(context.Background(), ai.AdviceRequest{Practices: []string{"A", "B"}})
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}
