package classifier

import (
	"regexp"
	"strings"
)

var (
	bracketedRe  = regexp.MustCompile(`[\[{][^\]}]*[\]}]`)
	blankLinesRe = regexp.MustCompile(`\n{2,}`)
	wordRe       = regexp.MustCompile(`[a-z']+`)
)

// Common function words plus lyric scaffolding tokens (section markers,
// vocalizations) that carry no learning value.
var stopwords = func() map[string]struct{} {
	common := []string{
		"a", "an", "the", "in", "on", "at", "for", "to", "of",
		"is", "am", "are", "was", "were", "do", "did", "have", "has", "had",
		"and", "or", "but",
	}
	lyric := []string{
		"verse", "chorus", "bridge", "outro", "pre-chorus", "post-chorus",
		"oh", "ah", "hah", "yeah", "woah", "ooh", "la", "na", "uh", "yo",
		"hey", "ha", "haaa",
	}
	set := make(map[string]struct{}, len(common)+len(lyric))
	for _, w := range append(common, lyric...) {
		set[w] = struct{}{}
	}
	return set
}()

// Clean strips bracketed annotations (section headers, ad-libs) and
// collapses runs of blank lines before tokenization.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	cleaned := bracketedRe.ReplaceAllString(raw, "")
	cleaned = blankLinesRe.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// Tokenize lowercases the cleaned text, extracts alphabetic runs
// (apostrophes kept), drops stopwords, and deduplicates while preserving
// first-seen order.
func Tokenize(cleaned string) []string {
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var words []string
	for _, word := range wordRe.FindAllString(strings.ToLower(cleaned), -1) {
		if _, skip := stopwords[word]; skip {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words
}
