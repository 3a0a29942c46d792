package document

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML extracts headings, paragraphs and list items, preferring
// <main>/<article> when the page has them.
func FromHTML(r io.Reader) (text, title string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}
	title = strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,h4,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return cleanWhitespace(strings.Join(parts, "\n")), title, nil
}

var wsRX = regexp.MustCompile(`[ \t]+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(wsRX.ReplaceAllString(s, "\n"))
}
