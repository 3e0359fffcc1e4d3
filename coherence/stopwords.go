package coherence

// stopwords contains Portuguese function words and high-frequency
// colloquialisms that carry no thematic value for keyword extraction.
// Compared against normalized words, accents intact.
var stopwords = map[string]struct{}{
	// Articles
	"a": {}, "o": {}, "os": {}, "as": {}, "um": {}, "uma": {}, "uns": {}, "umas": {},
	// Prepositions and contractions
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {}, "em": {}, "no": {}, "na": {},
	"nos": {}, "nas": {}, "por": {}, "para": {}, "pra": {}, "com": {}, "sem": {},
	"num": {}, "numa": {}, "nuns": {}, "numas": {}, "ao": {}, "aos": {}, "à": {}, "às": {},
	// Conjunctions and relatives
	"e": {}, "que": {}, "se": {},
	// Personal pronouns
	"eu": {}, "tu": {}, "ele": {}, "ela": {}, "nós": {}, "vos": {}, "eles": {}, "elas": {},
	"me": {}, "te": {}, "lhe": {}, "lhes": {}, "você": {}, "vocês": {},
	// Possessives
	"meu": {}, "minha": {}, "seu": {}, "sua": {}, "meus": {}, "minhas": {}, "seus": {}, "suas": {},
	// High-frequency adverbs and fillers
	"há": {}, "já": {}, "não": {}, "sim": {}, "tá": {}, "cê": {},
}

// isStopword reports whether word carries no thematic value.
func isStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
