package material

import (
	"strings"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// validMaterial reports whether a generated item is complete and actually
// describes the target word. Anything short of that is discarded; bad
// generator output must never reach storage.
func validMaterial(m domain.Material, target string) bool {
	if !sameWord(m.Word, target) {
		return false
	}
	if strings.TrimSpace(m.Gloss) == "" {
		return false
	}
	if len(m.Senses) == 0 {
		return false
	}
	for _, sense := range m.Senses {
		if strings.TrimSpace(sense.PartOfSpeech) == "" ||
			strings.TrimSpace(sense.DefinitionEN) == "" ||
			strings.TrimSpace(sense.DefinitionZH) == "" {
			return false
		}
		if len(sense.Examples) == 0 {
			return false
		}
		for _, ex := range sense.Examples {
			if strings.TrimSpace(ex.Sentence) == "" || strings.TrimSpace(ex.Translation) == "" {
				return false
			}
		}
	}
	for _, form := range m.RelatedForms {
		if strings.TrimSpace(form.Form) == "" || strings.TrimSpace(form.PartOfSpeech) == "" {
			return false
		}
	}
	return true
}

// sameWord compares words case- and whitespace-insensitively.
func sameWord(a, b string) bool {
	return domain.NormalizeWord(a) == domain.NormalizeWord(b)
}
