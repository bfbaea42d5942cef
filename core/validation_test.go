package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidatePractice(t *testing.T) {
	tests := []struct {
		name     string
		practice *Practice
		wantErr  error
	}{
		{name: "valid practice", practice: &Practice{Name: "Yoga"}},
		{name: "valid practice without vector", practice: &Practice{Name: "Yoga", Vector: nil}},
		{name: "nil practice", practice: nil, wantErr: ErrInvalidPractice},
		{name: "empty name", practice: &Practice{}, wantErr: ErrEmptyPracticeName},
		{name: "blank name", practice: &Practice{Name: "   "}, wantErr: ErrEmptyPracticeName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePractice(tt.practice)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePractice() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePractice() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFeedback(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name     string
		feedback *Feedback
		wantErr  error
	}{
		{name: "valid feedback", feedback: &Feedback{PracticeName: "Yoga", Rating: 4, CreatedAt: past}},
		{name: "lowest rating", feedback: &Feedback{PracticeName: "Yoga", Rating: 1, CreatedAt: past}},
		{name: "highest rating", feedback: &Feedback{PracticeName: "Yoga", Rating: 5, CreatedAt: past}},
		{name: "nil feedback", feedback: nil, wantErr: ErrInvalidFeedback},
		{name: "missing practice", feedback: &Feedback{Rating: 3, CreatedAt: past}, wantErr: ErrEmptyPracticeName},
		{name: "rating too low", feedback: &Feedback{PracticeName: "Yoga", Rating: 0, CreatedAt: past}, wantErr: ErrInvalidRating},
		{name: "rating too high", feedback: &Feedback{PracticeName: "Yoga", Rating: 6, CreatedAt: past}, wantErr: ErrInvalidRating},
		{name: "future timestamp", feedback: &Feedback{PracticeName: "Yoga", Rating: 3, CreatedAt: future}, wantErr: ErrInvalidTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeedback(tt.feedback)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFeedback() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFeedback() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidFeedback) {
				t.Errorf("ValidateFeedback() error should wrap ErrInvalidFeedback, got %v", err)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	if err := ValidateDocument(&Document{Content: "texte"}); err != nil {
		t.Errorf("ValidateDocument() unexpected error = %v", err)
	}
	if err := ValidateDocument(&Document{Content: "\n\t"}); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("ValidateDocument() error = %v, want ErrEmptyContent", err)
	}
	if err := ValidateDocument(nil); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("ValidateDocument() error = %v, want ErrInvalidDocument", err)
	}
}

func TestValidateAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		urgency float64
		wantErr bool
	}{
		{name: "zero", urgency: 0},
		{name: "default", urgency: 0.3},
		{name: "max", urgency: 1},
		{name: "negative", urgency: -0.1, wantErr: true},
		{name: "above one", urgency: 1.5, wantErr: true},
		{name: "NaN", urgency: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalysis(&Analysis{Urgency: tt.urgency})
			if tt.wantErr && !errors.Is(err, ErrInvalidUrgency) {
				t.Errorf("ValidateAnalysis() error = %v, want ErrInvalidUrgency", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAnalysis() unexpected error = %v", err)
			}
		})
	}

	if err := ValidateAnalysis(nil); !errors.Is(err, ErrInvalidAnalysis) {
		t.Errorf("ValidateAnalysis(nil) error = %v, want ErrInvalidAnalysis", err)
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Now().Add(-time.Second)) {
		t.Errorf("past timestamp should be valid")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Errorf("future timestamp should be invalid")
	}
}
