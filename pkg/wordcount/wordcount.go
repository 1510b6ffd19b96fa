// Package wordcount counts words in text using a letter/digit state machine.
package wordcount

import "unicode"

// Count returns the number of words in text.
//
// A word is a maximal run of Unicode letters or decimal digits. Every other
// rune, including apostrophes and hyphens, separates words.
func Count(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if isWordRune(r) {
			inWord = true
			continue
		}
		if inWord {
			count++
			inWord = false
		}
	}
	if inWord {
		count++
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
