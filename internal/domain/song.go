package domain

import (
	"regexp"
	"strings"
)

// Singer is a performing artist referenced by songs.
// Singers are shared, read-mostly rows: created on first sight, then linked.
type Singer struct {
	ID   string
	Name string
}

// Song is a catalog track. ID is the canonical external catalog key.
// A Song is immutable once constructed, except for its Lyric association,
// which transitions once from nil to a persisted lyric.
type Song struct {
	ID            string
	Name          string
	URI           string
	ExternalURL   string
	AlbumID       string
	AlbumName     string
	AlbumURL      string
	AlbumImageURL string
	Singers       []Singer
	Lyric         *Lyric
}

// PrimarySinger returns the first singer's name, or "" when none are linked.
func (s *Song) PrimarySinger() string {
	if len(s.Singers) == 0 {
		return ""
	}
	return s.Singers[0].Name
}

// LyricText returns the trimmed lyric text, or "" when no lyric is attached.
func (s *Song) LyricText() string {
	if s.Lyric == nil {
		return ""
	}
	return strings.TrimSpace(s.Lyric.Text)
}

// WithLyric returns a copy of the song with the lyric attached.
// The receiver is left unchanged (entities are immutable values).
func (s Song) WithLyric(lyric *Lyric) Song {
	s.Lyric = lyric
	return s
}

var instrumentalRe = regexp.MustCompile(`(?i)instrument(al)?`)

// Qualified reports whether the song is suitable for English learners:
// not an instrumental cut and with an ASCII (English) title.
func (s *Song) Qualified() bool {
	return !s.Instrumental() && s.EnglishName()
}

// Instrumental reports whether the title marks an instrumental version.
func (s *Song) Instrumental() bool {
	return instrumentalRe.MatchString(s.Name)
}

// EnglishName reports whether the song title is plain ASCII.
func (s *Song) EnglishName() bool {
	for _, r := range s.Name {
		if r > 127 {
			return false
		}
	}
	return true
}
