// Package data embeds the lexicon data files.
package data

import _ "embed"

//go:embed emotion_lexicon.txt
var EmotionLexicon string
