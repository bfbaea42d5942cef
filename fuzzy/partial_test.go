package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "identical", a: "stress", b: "stress", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "stress", b: "", want: 0},
		{name: "substring", a: "mal de dos", b: "dos", want: 100},
		{name: "prefix of compound keyword", a: "douleur", b: "douleurs_chroniques", want: 100},
		{name: "unrelated", a: "stress", b: "digestion", want: 36},
		{name: "shared stem", a: "digestion", b: "troubles digestifs", want: 78},
		{name: "accent difference", a: "fatigue", b: "fatigué", want: 86},
		{name: "same length", a: "abc", b: "abd", want: 67},
		{name: "red flag inside sentence", a: "j'ai une douleur thoracique depuis ce matin", b: "douleur thoracique", want: 100},
		{name: "unrelated sentence", a: "je suis stressé au travail", b: "souffle court", want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PartialRatio(tt.a, tt.b))
		})
	}
}

func TestPartialRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"sommeil", "insomnie"},
		{"douleur", "lombalgie"},
		{"hémorragie", "hemorragie"},
	}
	for _, p := range pairs {
		assert.Equal(t, PartialRatio(p[0], p[1]), PartialRatio(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestPartialRatio_Bounds(t *testing.T) {
	inputs := []string{"", "a", "mal", "douleur thoracique", "je dors mal depuis des semaines"}
	for _, a := range inputs {
		for _, b := range inputs {
			got := PartialRatio(a, b)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}
