package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Lyric is the raw lyric text of a song. Storage is content-addressed:
// the checksum of the normalized text is the row key, so two songs with
// identical lyrics share one stored row.
type Lyric struct {
	Text string
}

// Normalized returns the text trimmed with all whitespace runs collapsed
// into single spaces. This is the canonical form the checksum is taken over.
func (l *Lyric) Normalized() string {
	var b strings.Builder
	b.Grow(len(l.Text))
	prevSpace := false
	for _, r := range strings.TrimSpace(l.Text) {
		if unicode.IsSpace(r) {
			prevSpace = true
			continue
		}
		if prevSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Checksum returns the SHA-256 hex digest of the normalized text,
// used as the lyric's storage key.
func (l *Lyric) Checksum() string {
	sum := sha256.Sum256([]byte(l.Normalized()))
	return hex.EncodeToString(sum[:])
}

// Empty reports whether the lyric has no content after normalization.
func (l *Lyric) Empty() bool {
	return l.Normalized() == ""
}
