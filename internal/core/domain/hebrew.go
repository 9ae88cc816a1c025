package domain

import "strings"

// Hebrew combining marks: vowel points and cantillation (U+0591..U+05C7).
const hebrewMarkLo, hebrewMarkHi = '֑', 'ׇ'

// singlePrefixes are the common one-letter Hebrew prefixes:
// He (Ha-), Vav (Ve-), Bet (Be-), Lamed (Le-), Kaf (Ke-), Mem (Mi-), Shin (She-).
var singlePrefixes = []string{"ה", "ו", "ב", "ל", "כ", "מ", "ש"}

// doublePrefixes are conjunction+preposition stacks (Ve-Ha, Ve-Be, Ve-Le, Ve-Ke).
var doublePrefixes = []string{"וה", "וב", "ול", "וכ"}

// StripHebrewVowels removes vowel points and cantillation marks.
// Identity on text containing no Hebrew diacritics.
func StripHebrewVowels(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if r >= hebrewMarkLo && r <= hebrewMarkHi {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsHebrew reports whether the text has any codepoint in the
// Hebrew block (U+0590..U+05FF).
func ContainsHebrew(text string) bool {
	for _, r := range text {
		if r >= '֐' && r <= '׿' {
			return true
		}
	}
	return false
}

// HebrewCandidates generates potential lexicon lemmas for a surface form,
// most specific first: the original word, the vowel-stripped form, then the
// vowel-stripped form with single and double prefixes removed. The result
// is a finite ordered sequence with duplicates removed; consumers try each
// candidate until the first lookup hit or exhaustion.
func HebrewCandidates(word string) []string {
	var candidates []string
	seen := make(map[string]struct{})
	add := func(c string) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		candidates = append(candidates, c)
	}

	add(word)

	noVowels := StripHebrewVowels(word)
	add(noVowels)

	// Prefix stripping on very short words produces junk stems.
	runes := []rune(noVowels)
	if len(runes) > 2 {
		for _, p := range singlePrefixes {
			if strings.HasPrefix(noVowels, p) {
				add(string(runes[1:]))
			}
		}
		if len(runes) > 3 {
			for _, p := range doublePrefixes {
				if strings.HasPrefix(noVowels, p) {
					add(string(runes[2:]))
				}
			}
		}
	}

	return candidates
}
