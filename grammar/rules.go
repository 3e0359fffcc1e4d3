package grammar

import "regexp"

// Rule is one grammar check: a case-insensitive pattern with a stable
// identifier and a human-readable label in Portuguese. Rules are data,
// not code, so the set can be tuned and tested independently.
type Rule struct {
	ID      string
	Label   string
	Pattern *regexp.Regexp
}

// rules is the fixed, ordered grammar rule set. Every line matching a
// pattern produces one issue tagged with the rule ID.
var rules = []Rule{
	{
		ID:      "grammar_pra_mim_fazer",
		Label:   "Uso incorreto de pronome após preposição",
		Pattern: regexp.MustCompile(`(?i)pra\s+mim\s+\w+|para\s+mim\s+\w+`),
	},
	{
		ID:      "grammar_a_gente_vamos",
		Label:   "Concordância com 'a gente'",
		Pattern: regexp.MustCompile(`(?i)a\s+gente\s+(vamos|fomos|iremos|cantamos)`),
	},
	{
		ID:      "grammar_os_problema",
		Label:   "Concordância nominal irregular",
		Pattern: regexp.MustCompile(`(?i)(os|as)\s+(problema|criança|pessoa|coisa|menina)\b`),
	},
	{
		ID:      "grammar_menos_eu",
		Label:   "Regência com 'menos eu'",
		Pattern: regexp.MustCompile(`(?i)menos\s+eu`),
	},
	{
		ID:      "grammar_ha_atras",
		Label:   "Redundância com há",
		Pattern: regexp.MustCompile(`(?i)há\s+\w+\s+atrás`),
	},
	{
		ID:      "grammar_menas",
		Label:   "Uso incorreto de 'menas'",
		Pattern: regexp.MustCompile(`(?i)\bmenas\b`),
	},
	{
		ID:      "grammar_seje",
		Label:   "Uso incorreto de 'seje'",
		Pattern: regexp.MustCompile(`(?i)\bseje\b`),
	},
	{
		ID:      "grammar_mais_melhor",
		Label:   "Comparativo redundante",
		Pattern: regexp.MustCompile(`(?i)mais\s+melhor|mais\s+pior|mais\s+menor`),
	},
}

// slangOutdated lists dated slang terms flagged once per line each.
var slangOutdated = []string{"maneiro", "da hora", "irado"}

// slangPatterns are the word-boundary matchers for slangOutdated.
var slangPatterns = compileSlang(slangOutdated)

func compileSlang(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return out
}

// Rules returns a copy of the grammar rule set in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}
