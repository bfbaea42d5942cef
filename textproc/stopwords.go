package textproc

// stopWords holds folded French and English function words.
var stopWords = map[string]bool{
	// French
	"a": true, "au": true, "aux": true, "avec": true, "ce": true, "ces": true,
	"cette": true, "dans": true, "de": true, "des": true, "du": true, "elle": true,
	"en": true, "et": true, "eux": true, "il": true, "ils": true, "je": true,
	"j": true, "l": true, "d": true, "n": true, "s": true, "qu": true, "c": true,
	"la": true, "le": true, "les": true, "leur": true, "lui": true, "ma": true,
	"mais": true, "me": true, "meme": true, "mes": true, "moi": true, "mon": true,
	"ne": true, "nos": true, "notre": true, "nous": true, "on": true, "ou": true,
	"par": true, "pas": true, "pour": true, "qui": true, "que": true, "quoi": true,
	"sa": true, "se": true, "ses": true, "son": true, "sur": true, "ta": true,
	"te": true, "tes": true, "toi": true, "ton": true, "tu": true, "un": true,
	"une": true, "vos": true, "votre": true, "vous": true, "y": true, "est": true,
	"suis": true, "es": true, "sont": true, "ai": true, "as": true, "avons": true,
	"avez": true, "ont": true, "etre": true, "avoir": true, "plus": true,
	"tres": true, "depuis": true, "sans": true, "sous": true, "entre": true,
	"aussi": true, "tout": true, "tous": true, "toute": true, "toutes": true,
	// English
	"the": true, "an": true, "be": true, "is": true, "are": true, "was": true,
	"to": true, "of": true, "and": true, "in": true, "that": true, "have": true,
	"it": true, "for": true, "not": true, "with": true, "you": true, "do": true,
	"at": true, "this": true, "but": true, "by": true, "from": true,
}

// IsStopWord reports whether a folded token is a stop word.
func IsStopWord(token string) bool {
	return stopWords[token]
}
