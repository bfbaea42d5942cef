package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// MinRating is the lowest accepted feedback rating.
	MinRating = 1
	// MaxRating is the highest accepted feedback rating.
	MaxRating = 5
)

// ValidatePractice validates a Practice according to domain rules.
//
// Validation rules:
//   - Name must not be blank
//
// NOT validated:
//   - Vector (can be empty until the catalog is embedded)
//   - ID (derived from the name on insert)
func ValidatePractice(practice *Practice) error {
	if practice == nil {
		return fmt.Errorf("%w: practice is nil", ErrInvalidPractice)
	}
	if strings.TrimSpace(practice.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPractice, ErrEmptyPracticeName)
	}
	return nil
}

// ValidateFeedback validates a Feedback according to domain rules.
//
// Validation rules:
//   - PracticeName must not be blank
//   - Rating must be between MinRating and MaxRating
//   - CreatedAt must not be in the future
func ValidateFeedback(feedback *Feedback) error {
	if feedback == nil {
		return fmt.Errorf("%w: feedback is nil", ErrInvalidFeedback)
	}
	if strings.TrimSpace(feedback.PracticeName) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrEmptyPracticeName)
	}
	if !IsValidRating(feedback.Rating) {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidFeedback, ErrInvalidRating, feedback.Rating)
	}
	if !IsValidTimestamp(feedback.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrInvalidTimestamp)
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if strings.TrimSpace(doc.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}
	return nil
}

// ValidateAnalysis checks the fields the recommender relies on.
// A nil embedding is valid: it means there is nothing to score.
func ValidateAnalysis(analysis *Analysis) error {
	if analysis == nil {
		return fmt.Errorf("%w: analysis is nil", ErrInvalidAnalysis)
	}
	if math.IsNaN(analysis.Urgency) || analysis.Urgency < 0 || analysis.Urgency > 1 {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidAnalysis, ErrInvalidUrgency, analysis.Urgency)
	}
	return nil
}

// IsValidRating reports whether a rating is within the accepted range.
func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
