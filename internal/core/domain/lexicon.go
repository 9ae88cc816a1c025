package domain

// Dictionary identifies a lexicon used for original-language lookups.
type Dictionary string

const (
	DictionaryBDB Dictionary = "BDB" // Brown-Driver-Briggs, Hebrew
	DictionaryLSJ Dictionary = "LSJ" // Liddell-Scott-Jones, Greek
)

// Definition is one lexicon entry for a Greek or Hebrew word.
type Definition struct {
	Lexeme          string `json:"lexeme"`
	Transliteration string `json:"transliteration"`
	Pronunciation   string `json:"pronunciation"`
	ShortDefinition string `json:"short_definition"`
	Definition      string `json:"definition"`
}
