package genius

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	sectionHeaderRegex = regexp.MustCompile(`(?m)^[ \t]*\[[^\]\n]*\][ \t]*\n?`)
	blankRunRegex      = regexp.MustCompile(`\n{3,}`)
)

// extractLyrics returns the lyrics text from a Genius song page.
//
// Genius renders lyrics in one or more elements like this:
//
//	<div data-lyrics-container="true">Line one<br/>Line two</div>
//
// Every container is converted to text with <br> turned into newlines and
// the containers are joined in page order. Nodes Genius marks with
// data-exclude-from-selection (contributor headers, ads) are dropped.
//
// An empty string with a nil error means the page has no lyrics, for
// example an instrumental.
func extractLyrics(htmlContent string, removeSectionHeaders bool) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	containers := doc.Find(`div[data-lyrics-container="true"]`)
	if containers.Length() == 0 {
		return "", nil
	}

	containers.Find(`[data-exclude-from-selection="true"]`).Remove()
	containers.Find("br").ReplaceWithHtml("\n")

	var parts []string
	containers.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	lyrics := strings.Join(parts, "\n")
	if removeSectionHeaders {
		lyrics = stripSectionHeaders(lyrics)
	}

	return strings.TrimSpace(lyrics), nil
}

// stripSectionHeaders removes "[Chorus]" style lines and squeezes the blank
// runs they leave behind.
func stripSectionHeaders(lyrics string) string {
	lyrics = sectionHeaderRegex.ReplaceAllString(lyrics, "")
	return blankRunRegex.ReplaceAllString(lyrics, "\n\n")
}
