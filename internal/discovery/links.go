package discovery

import (
	"bytes"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	tournamentHref    = regexp.MustCompile(`^/tournament/([^/?#"]+)$`)
	tournamentHrefRaw = regexp.MustCompile(`href="/tournament/([^"]+)">`)
)

// ExtractTournamentID returns the id of the first tournament link on a game
// page, or "" when the page links no tournament. Links the HTML parser does
// not expose as anchors, such as those inside <noscript>, are found by
// scanning the raw page text.
func ExtractTournamentID(page []byte) string {
	if id := anchorTournamentID(page); id != "" {
		return id
	}
	if m := tournamentHrefRaw.FindSubmatch(page); m != nil {
		return string(m[1])
	}
	return ""
}

func anchorTournamentID(page []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}

	var id string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if m := tournamentHref.FindStringSubmatch(href); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	return id
}
