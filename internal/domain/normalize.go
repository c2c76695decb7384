package domain

import "strings"

// NormalizeWord canonicalizes a word for comparison and lookup:
// trimmed, lowercased, inner space runs collapsed. Vocabulary names and
// generated material words are compared in this form. Apostrophes and
// hyphens are preserved.
func NormalizeWord(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ""
	}
	return strings.Join(strings.Fields(word), " ")
}
