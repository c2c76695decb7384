package domain

import "testing"

func TestLyric_Normalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim edges", input: "  ghost in the night  ", want: "ghost in the night"},
		{name: "collapse newlines", input: "ghost\n\nin the night", want: "ghost in the night"},
		{name: "collapse tabs and spaces", input: "ghost \t in   the night", want: "ghost in the night"},
		{name: "case preserved", input: "Ghost In The Night", want: "Ghost In The Night"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \n\t ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := Lyric{Text: tt.input}
			if got := l.Normalized(); got != tt.want {
				t.Errorf("Normalized(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLyric_Checksum_ContentAddressed(t *testing.T) {
	t.Parallel()

	// Byte-identical normalized text must hash identically regardless of
	// the surrounding whitespace shape.
	a := Lyric{Text: "Ghost in the night,\nalone, alone"}
	b := Lyric{Text: "  Ghost in the night, alone, alone  "}
	if a.Checksum() != b.Checksum() {
		t.Errorf("checksums differ for identical normalized text: %s vs %s", a.Checksum(), b.Checksum())
	}

	c := Lyric{Text: "a different song entirely"}
	if a.Checksum() == c.Checksum() {
		t.Error("checksums collide for different text")
	}

	if len(a.Checksum()) != 64 {
		t.Errorf("expected 64-char sha256 hex digest, got %d chars", len(a.Checksum()))
	}
}

func TestLyric_Empty(t *testing.T) {
	t.Parallel()

	if !(&Lyric{Text: " \n "}).Empty() {
		t.Error("whitespace-only lyric should be empty")
	}
	if (&Lyric{Text: "la la la"}).Empty() {
		t.Error("non-blank lyric should not be empty")
	}
}
