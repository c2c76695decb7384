package domain

import "testing"

func TestCoarsenLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   Level
		wantOK bool
	}{
		{name: "A1 to A", input: "A1", want: LevelA, wantOK: true},
		{name: "A2 to A", input: "A2", want: LevelA, wantOK: true},
		{name: "B1 to B", input: "B1", want: LevelB, wantOK: true},
		{name: "B2 to B", input: "B2", want: LevelB, wantOK: true},
		{name: "C1 to C", input: "C1", want: LevelC, wantOK: true},
		{name: "C2 to C", input: "C2", want: LevelC, wantOK: true},
		{name: "lowercase fine code", input: "b1", want: LevelB, wantOK: true},
		{name: "already coarse", input: "A", want: LevelA, wantOK: true},
		{name: "none marker", input: "None", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "Z9", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := CoarsenLevel(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("CoarsenLevel(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CoarsenLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAnalyzeLevels(t *testing.T) {
	t.Parallel()

	t.Run("empty mapping", func(t *testing.T) {
		t.Parallel()
		level := AnalyzeLevels(nil)
		if level.Average != "" {
			t.Errorf("expected empty average, got %q", level.Average)
		}
		for _, code := range FineLevels {
			if level.Distribution[code] != 0 {
				t.Errorf("expected zero count for %s", code)
			}
		}
	})

	t.Run("weighted average", func(t *testing.T) {
		t.Parallel()
		level := AnalyzeLevels(map[string]string{
			"ghost": "B2", // 4
			"alone": "A2", // 2
			"night": "B1", // 3
		})
		// (4+2+3)/3 = 3 → B1
		if level.Average != "B1" {
			t.Errorf("average = %q, want B1", level.Average)
		}
		if level.Distribution["B2"] != 1 || level.Distribution["A2"] != 1 || level.Distribution["B1"] != 1 {
			t.Errorf("unexpected distribution: %v", level.Distribution)
		}
		if level.Distribution["C2"] != 0 {
			t.Error("expected zero-filled C2 bucket")
		}
	})

	t.Run("unknown codes ignored", func(t *testing.T) {
		t.Parallel()
		level := AnalyzeLevels(map[string]string{"ghost": "B2", "hmm": "None"})
		if level.Average != "B2" {
			t.Errorf("average = %q, want B2", level.Average)
		}
	})
}
