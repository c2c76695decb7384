package genius

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Lyric pages render the text inside obfuscated-class divs whose class
// names keep a stable "Lyrics__Container" prefix.
var lyricContainerSel = cascadia.MustCompile(`div[class^="Lyrics__Container"]`)

var (
	sectionStartRe = regexp.MustCompile(`\[[A-Za-z0-9\s#]+\]`)
	sectionRe      = regexp.MustCompile(`\s*\[([^\]]+)\]\s*`)
	runOnRe        = regexp.MustCompile(`([a-z)])(\[)`)
)

// ExtractLyrics pulls the lyric text out of a song page's HTML.
// Returns "" when the page has no lyric containers (instrumentals,
// unreleased pages).
func ExtractLyrics(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	blocks := cascadia.QueryAll(doc, lyricContainerSel)
	if len(blocks) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, textWithBreaks(block))
	}

	return refine(strings.Join(parts, "\n")), nil
}

// textWithBreaks flattens a node to plain text, turning <br> into newlines
// so line structure survives the tag strip.
func textWithBreaks(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "br" {
				b.WriteByte('\n')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// refine normalizes scraped text into readable lyrics: drop everything
// before the first section header, give each header its own line with a
// blank line above, and split run-on lines where a verse ends right at a
// header bracket.
func refine(text string) string {
	if loc := sectionStartRe.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
	}
	text = sectionRe.ReplaceAllString(text, "\n\n[$1]\n")
	text = runOnRe.ReplaceAllString(text, "$1\n$2")
	return strings.TrimSpace(text)
}
