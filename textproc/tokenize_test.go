package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Anxiété", want: "anxiete"},
		{in: "ÉPUISEMENT", want: "epuisement"},
		{in: "cœur", want: "cœur"},
		{in: "ﬁn", want: "fin"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("J'ai mal au dos, depuis 3 semaines!")
	assert.Equal(t, []string{"j", "ai", "mal", "au", "dos", "depuis", "3", "semaines"}, got)

	assert.Empty(t, Tokenize("  ...  "))
}

func TestTerms(t *testing.T) {
	got := Terms("Le stress et le stress au travail")
	assert.Equal(t, []string{"stress", "stress", "travail"}, got)
}

func TestKeywords(t *testing.T) {
	got := Keywords("Je suis épuisé, épuisé et stressé par le travail")
	assert.Equal(t, []string{"epuise", "stresse", "travail"}, got)
}

func TestContainsAllTerms(t *testing.T) {
	doc := "La sophrologie aide à gérer le stress et améliore le sommeil."

	assert.True(t, ContainsAllTerms(doc, "stress sommeil"))
	assert.True(t, ContainsAllTerms(doc, "Gérer le STRESS"))
	assert.False(t, ContainsAllTerms(doc, "stress digestion"))
	assert.False(t, ContainsAllTerms(doc, "le et la"))
}
