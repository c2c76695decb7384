package material

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// buildPrompt enumerates one batch's words for the generator. Words in a
// batch share a level bucket for all practical purposes, so the first
// word's level stands for the batch.
func buildPrompt(batch []domain.Vocabulary, song *domain.Song) string {
	words := make([]string, len(batch))
	for i, v := range batch {
		words[i] = v.Name
	}
	wordList, _ := json.Marshal(words)
	level := batch[0].Level

	var b strings.Builder
	b.WriteString(`You are an English learning assistant for Taiwanese learners.

TASK:
For EACH word in the given list, return a detailed vocabulary entry with:
1. Multiple part-of-speech entries (noun, verb, adjective... as applicable).
2. A short Traditional Chinese gloss for the word (head_zh).
    - Example: for "ghost", head_zh should be like "鬼魂、幽靈".
3. For each part-of-speech entry:
`)
	fmt.Fprintf(&b, `    - definition_en: short, simple English explanation (CEFR %s level).
    - definition_zh: clear Traditional Chinese explanation, natural and easy to understand.
    - examples: 2-3 everyday example sentences (CEFR %s), each with a natural Traditional Chinese translation.
`, level, level)
	b.WriteString(`4. related_forms: common derivatives or different grammatical forms of the word
    (e.g. ghostly, ghosting, staged, wildness), with part-of-speech.

OUTPUT FORMAT (IMPORTANT):
Return ONLY valid JSON.
NO markdown, NO comments, NO explanations outside JSON.

JSON SCHEMA:
[
    {
    "word": "string",
    "head_zh": "string",
    "entries": [
        {
        "pos": "string",
        "definition_en": "string",
        "definition_zh": "string",
        "examples": [
            {"sentence": "string", "translation": "string"}
        ]
        }
    ],
    "related_forms": [
        {
        "form": "string",
        "pos": "string"
        }
    ]
    }
]

`)
	fmt.Fprintf(&b, "LEVEL: %s\nSONG_TITLE: %s\nWORD LIST:\n%s\n", level, song.Name, wordList)
	b.WriteString("\nOUTPUT FORMAT (IMPORTANT):\nReturn ONLY valid JSON. No markdown, no comments, no code fences, no ``` blocks.\n")
	return b.String()
}
