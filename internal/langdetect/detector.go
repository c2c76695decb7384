// Package langdetect wraps the lingua language detector for lyric
// validation. Only languages that actually show up in popular-song
// catalogs are loaded; a smaller candidate set keeps detection sharp.
package langdetect

import "github.com/pemistahl/lingua-go"

// Detector computes how confidently a text reads as English.
type Detector struct {
	inner lingua.LanguageDetector
}

// New builds a detector over the common catalog languages.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Spanish,
			lingua.French,
			lingua.German,
			lingua.Portuguese,
			lingua.Japanese,
			lingua.Korean,
			lingua.Chinese,
		).
		Build()
	return &Detector{inner: detector}
}

// EnglishConfidence returns the English confidence in [0, 1].
func (d *Detector) EnglishConfidence(text string) float64 {
	return d.inner.ComputeLanguageConfidence(text, lingua.English)
}
