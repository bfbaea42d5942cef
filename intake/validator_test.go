package intake

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/praxis/ai"
	"github.com/poiesic/praxis/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRedFlag(t *testing.T) {
	tests := []struct {
		text string
		flag string
	}{
		{"J'ai une douleur thoracique depuis ce matin", "douleur thoracique"},
		{"DOULEUR THORACIQUE", "douleur thoracique"},
		{"J'ai parfois des pensées suicidaires", "pensées suicidaires"},
		{"j'ai des difficultés à respirer", "difficulté à respirer"},
		{"J'ai eu un évanouisement hier", "évanouissement"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			flag, ok := DetectRedFlag(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.flag, flag)
		})
	}
}

func TestDetectRedFlag_None(t *testing.T) {
	for _, text := range []string{
		"Je suis épuisé depuis des semaines et je n'arrive plus à me concentrer au travail",
		"Je suis stressé par mon travail et je dors mal",
		"j'ai une douleur a la poitrine",
		"Je me sens anxieux et j'ai des tensions dans la nuque",
		"je suis fatigué",
	} {
		_, ok := DetectRedFlag(text)
		assert.False(t, ok, text)
	}
}

func TestNewValidator(t *testing.T) {
	_, err := NewValidator(nil)
	assert.ErrorIs(t, err, ErrContextAnalyzerRequired)

	_, err = NewValidator(mock.NewMockContextAnalyzer(), WithThreshold(1.5))
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestValidate_Emergency(t *testing.T) {
	analyzer := mock.NewMockContextAnalyzer()
	v, err := NewValidator(analyzer)
	require.NoError(t, err)

	got, err := v.Validate(context.Background(), "J'ai une douleur thoracique depuis ce matin")
	require.NoError(t, err)
	assert.Equal(t, StatusEmergency, got.Status)
	assert.Equal(t, EmergencyMessage, got.Message)
	assert.Equal(t, "douleur thoracique", got.RedFlag)
	assert.False(t, got.Proceed())
	assert.Zero(t, analyzer.CallCount())
}

func TestValidate_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		assessment ai.ContextAssessment
		status     Status
		text       string
		question   string
	}{
		{
			name:       "sufficient",
			assessment: ai.ContextAssessment{CorrectedText: "Je suis stressé.", ConfidenceScore: 0.9},
			status:     StatusOK,
			text:       "Je suis stressé.",
		},
		{
			name:       "threshold is sufficient",
			assessment: ai.ContextAssessment{CorrectedText: "Je suis stressé.", ConfidenceScore: 0.4},
			status:     StatusOK,
			text:       "Je suis stressé.",
		},
		{
			name:       "empty correction keeps input",
			assessment: ai.ContextAssessment{ConfidenceScore: 0.7},
			status:     StatusOK,
			text:       "je sui stressé",
		},
		{
			name:       "insufficient",
			assessment: ai.ContextAssessment{ConfidenceScore: 0.2, ClarifyingQuestion: "Depuis quand ?"},
			status:     StatusInsufficient,
			question:   "Depuis quand ?",
		},
		{
			name:       "insufficient without question",
			assessment: ai.ContextAssessment{ConfidenceScore: 0.1},
			status:     StatusInsufficient,
			question:   DefaultClarifyingQuestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := mock.NewMockContextAnalyzer()
			analyzer.AssessContextFunc = func(ctx context.Context, text string) (*ai.ContextAssessment, error) {
				a := tt.assessment
				return &a, nil
			}
			v, err := NewValidator(analyzer)
			require.NoError(t, err)

			got, err := v.Validate(context.Background(), "je sui stressé")
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.question, got.ClarifyingQuestion)
			assert.Equal(t, tt.assessment.ConfidenceScore, got.Confidence)
		})
	}
}

func TestValidate_Unverified(t *testing.T) {
	analyzer := mock.NewMockContextAnalyzer()
	analyzer.AssessContextFunc = func(ctx context.Context, text string) (*ai.ContextAssessment, error) {
		return nil, fmt.Errorf("%w: bad json", ai.ErrMalformedResponse)
	}
	v, err := NewValidator(analyzer)
	require.NoError(t, err)

	got, err := v.Validate(context.Background(), "je dors mal depuis un mois")
	require.NoError(t, err)
	assert.Equal(t, StatusUnverified, got.Status)
	assert.Equal(t, "je dors mal depuis un mois", got.Text)
	assert.True(t, got.Proceed())
}

func TestValidate_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	analyzer := mock.NewMockContextAnalyzer()
	analyzer.AssessContextFunc = func(ctx context.Context, text string) (*ai.ContextAssessment, error) {
		return nil, boom
	}
	v, err := NewValidator(analyzer)
	require.NoError(t, err)

	_, err = v.Validate(context.Background(), "je dors mal depuis un mois")
	assert.ErrorIs(t, err, boom)
}

func TestValidate_CustomThreshold(t *testing.T) {
	analyzer := mock.NewMockContextAnalyzer()
	v, err := NewValidator(analyzer, WithThreshold(0.95))
	require.NoError(t, err)

	got, err := v.Validate(context.Background(), "je dors mal depuis un mois")
	require.NoError(t, err)
	assert.Equal(t, StatusInsufficient, got.Status)
}
