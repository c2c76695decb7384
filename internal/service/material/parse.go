package material

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

var (
	openFenceRe     = regexp.MustCompile("(?i)^```json\\s*")
	closeFenceRe    = regexp.MustCompile("```\\s*$")
	trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)
)

// parseBatch turns a raw generator response into material items. Models
// wrap JSON in markdown fences and leave trailing commas despite
// instructions, so both are repaired before decoding. A response that
// still fails to decode yields zero items rather than an error.
func parseBatch(raw string) []domain.Material {
	cleaned := strings.TrimSpace(raw)
	cleaned = openFenceRe.ReplaceAllString(cleaned, "")
	cleaned = closeFenceRe.ReplaceAllString(cleaned, "")
	cleaned = trailingCommaRe.ReplaceAllString(cleaned, "$1")
	cleaned = strings.TrimSpace(cleaned)

	var items []domain.Material
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil
	}
	return items
}
