package analysis

import "errors"

var (
	// ErrEmbedderRequired is returned when an analyzer has no embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmptyLexicon is returned when a lexicon has no category.
	ErrEmptyLexicon = errors.New("lexicon has no category")

	// ErrInvalidQuestionnaire is returned when questionnaire answers cannot be decoded.
	ErrInvalidQuestionnaire = errors.New("invalid questionnaire")
)
