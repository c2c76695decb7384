package domain

import "testing"

func TestSong_Qualified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{name: "plain english title", title: "Ghost Town", want: true},
		{name: "instrumental version", title: "Ghost Town (Instrumental)", want: false},
		{name: "instrument spelling", title: "Ghost Town - Instrument Mix", want: false},
		{name: "non-ascii title", title: "夜に駆ける", want: false},
		{name: "title with numbers", title: "22", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Song{Name: tt.title}
			if got := s.Qualified(); got != tt.want {
				t.Errorf("Qualified(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestSong_PrimarySinger(t *testing.T) {
	t.Parallel()

	s := Song{Singers: []Singer{{ID: "s1", Name: "First"}, {ID: "s2", Name: "Second"}}}
	if got := s.PrimarySinger(); got != "First" {
		t.Errorf("PrimarySinger() = %q, want First", got)
	}

	empty := Song{}
	if got := empty.PrimarySinger(); got != "" {
		t.Errorf("PrimarySinger() on empty = %q, want empty", got)
	}
}

func TestSong_WithLyric(t *testing.T) {
	t.Parallel()

	orig := Song{ID: "song-1", Name: "Ghost Town"}
	lyric := &Lyric{Text: "ghost in the night"}

	updated := orig.WithLyric(lyric)
	if updated.Lyric != lyric {
		t.Error("expected lyric attached on copy")
	}
	if orig.Lyric != nil {
		t.Error("original song must stay unchanged")
	}
	if updated.LyricText() != "ghost in the night" {
		t.Errorf("LyricText() = %q", updated.LyricText())
	}
}
