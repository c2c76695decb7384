package domain

// Material is the structured study payload generated for one vocabulary
// word. The JSON shape matches the generator's output schema so parsed
// batch items map onto it directly.
type Material struct {
	Word         string        `json:"word"`
	Gloss        string        `json:"head_zh"`
	Senses       []Sense       `json:"entries"`
	RelatedForms []RelatedForm `json:"related_forms,omitempty"`
}

// Sense is one part-of-speech entry of a material payload, with bilingual
// definitions and example sentence pairs.
type Sense struct {
	PartOfSpeech string        `json:"pos"`
	DefinitionEN string        `json:"definition_en"`
	DefinitionZH string        `json:"definition_zh"`
	Examples     []ExamplePair `json:"examples"`
}

// ExamplePair is one example sentence with its translation.
type ExamplePair struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// RelatedForm is a derivative or inflected form of the head word.
type RelatedForm struct {
	Form         string `json:"form"`
	PartOfSpeech string `json:"pos"`
}
