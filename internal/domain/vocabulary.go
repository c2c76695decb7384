package domain

import "github.com/google/uuid"

// Vocabulary is a single word extracted from song lyrics, graded by
// difficulty. A row is shared across all songs containing the word:
// created once, then only linked. Material starts nil and transitions
// once to a generated payload; it is never overwritten once set.
type Vocabulary struct {
	ID       uuid.UUID
	Name     string
	Level    Level
	Material *Material
}

// HasMaterial reports whether study material has already been generated.
func (v *Vocabulary) HasMaterial() bool {
	return v.Material != nil
}

// WithMaterial returns a copy of the vocabulary with material set.
func (v Vocabulary) WithMaterial(m *Material) Vocabulary {
	v.Material = m
	return v
}
