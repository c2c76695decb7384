package domain

import "strings"

// Level is a coarse CEFR difficulty bucket stored on vocabulary rows.
type Level string

const (
	LevelA Level = "A"
	LevelB Level = "B"
	LevelC Level = "C"
)

// IsValid reports whether the level is one of the coarse buckets.
func (l Level) IsValid() bool {
	switch l {
	case LevelA, LevelB, LevelC:
		return true
	}
	return false
}

// fineLevelScores weight the fine-grained CEFR scale for song analysis.
var fineLevelScores = map[string]int{
	"A1": 1, "A2": 2,
	"B1": 3, "B2": 4,
	"C1": 5, "C2": 6,
}

// FineLevels lists the fine-grained CEFR scale in ascending order.
var FineLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// CoarsenLevel maps a fine-grained CEFR code (A1, B2, ...) onto a coarse
// bucket. Unrecognized codes return "" and false; callers drop those words.
func CoarsenLevel(fine string) (Level, bool) {
	fine = strings.ToUpper(strings.TrimSpace(fine))
	if fine == "" {
		return "", false
	}
	if _, ok := fineLevelScores[fine]; !ok {
		// Accept bare coarse codes as-is.
		l := Level(fine)
		if l.IsValid() {
			return l, true
		}
		return "", false
	}
	switch fine[0] {
	case 'A':
		return LevelA, true
	case 'B':
		return LevelB, true
	default:
		return LevelC, true
	}
}

// FineLevelScore returns the numeric weight of a fine CEFR code,
// or 0 and false for unknown codes.
func FineLevelScore(fine string) (int, bool) {
	score, ok := fineLevelScores[strings.ToUpper(strings.TrimSpace(fine))]
	return score, ok
}

// FineLevelForScore returns the fine CEFR code whose weight equals score.
func FineLevelForScore(score int) (string, bool) {
	for code, s := range fineLevelScores {
		if s == score {
			return code, true
		}
	}
	return "", false
}
