package analysis

import "strings"

// Category is a symptom category and the keywords that reveal it.
// Underscores in keywords stand for spaces.
type Category struct {
	Name     string
	Keywords []string
}

// Lexicon is an ordered list of symptom categories.
type Lexicon []Category

// DefaultLexicon returns the built-in French symptom lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		{Name: "stress", Keywords: []string{
			"stress", "anxiété", "angoisse", "nervosité", "tension", "éprouver du stress",
			"irritabilité", "pression", "tension nerveuse", "stress_anxiety",
		}},
		{Name: "douleur", Keywords: []string{
			"douleur", "mal", "souffrance", "inflammation", "douleur physique",
			"back_pain_specific", "cervicalgie", "lombalgie", "mal de dos",
			"tensions musculaires", "douleur persistante", "physical_pain",
		}},
		{Name: "fatigue", Keywords: []string{
			"fatigue", "épuisement", "burnout", "surmenage", "manque d’énergie",
			"épuisement mental", "fatigue chronique", "épuisement physique",
		}},
		{Name: "sommeil", Keywords: []string{
			"insomnie", "sommeil", "dormir", "cauchemar", "troubles du sommeil",
			"sommeil agité", "dérèglement du sommeil", "sleep_issues",
			"fatigue liée au sommeil", "trouble du sommeil",
		}},
		{Name: "digestion", Keywords: []string{
			"digestion", "ventre", "intestin", "estomac", "troubles digestifs",
			"ballonnements", "indigestion", "digestive", "problèmes digestifs",
			"mal de ventre", "acidité gastrique",
		}},
	}
}

// Urgency levels.
const (
	UrgencyHigh   = 0.9
	UrgencyMedium = 0.6
	UrgencyLow    = 0.3
)

var (
	highUrgencyMarkers = []string{
		"urgent", "insupportable", "sévère", "aigu", "extrême", "intolérable",
		"critique", "insoutenable", "très intense", "très grave",
	}
	mediumUrgencyMarkers = []string{
		"gênant", "difficile", "intense", "modéré", "inconfortable",
		"problématique", "notable", "significatif", "perturbant",
	}
)

// AssessUrgency rates lowered text: UrgencyHigh if it contains a high
// marker, else UrgencyMedium for a medium marker, else UrgencyLow.
func AssessUrgency(lowered string) float64 {
	switch {
	case containsAny(lowered, highUrgencyMarkers):
		return UrgencyHigh
	case containsAny(lowered, mediumUrgencyMarkers):
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
