package domain

import "math"

// SongLevel summarizes the difficulty of a song's vocabulary.
type SongLevel struct {
	// Distribution holds a word count per fine CEFR code, with every
	// code present (zero-filled).
	Distribution map[string]int
	// Average is the weighted-average fine CEFR code, "" when the
	// distribution is empty.
	Average string
}

// AnalyzeLevels builds a SongLevel from a word→fine-CEFR mapping.
// Words with unrecognized codes are ignored.
func AnalyzeLevels(wordLevels map[string]string) SongLevel {
	dist := make(map[string]int, len(FineLevels))
	for _, code := range FineLevels {
		dist[code] = 0
	}

	total := 0
	weighted := 0
	for _, code := range wordLevels {
		score, ok := FineLevelScore(code)
		if !ok {
			continue
		}
		dist[normalizedFine(code, score)]++
		total++
		weighted += score
	}

	level := SongLevel{Distribution: dist}
	if total == 0 {
		return level
	}

	avg := int(math.Round(float64(weighted) / float64(total)))
	if code, ok := FineLevelForScore(avg); ok {
		level.Average = code
	}
	return level
}

func normalizedFine(code string, score int) string {
	if normalized, ok := FineLevelForScore(score); ok {
		return normalized
	}
	return code
}
