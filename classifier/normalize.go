package classifier

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduces text to the form keywords are matched against: markup
// is replaced by its text, the result is NFKC normalized, case folded and
// its whitespace runs collapsed to single spaces.
func Normalize(text string) string {
	if strings.ContainsAny(text, "<&") {
		text = markupText(text)
	}

	text = norm.NFKC.String(text)
	text = cases.Fold().String(text)

	return strings.Join(strings.Fields(text), " ")
}

// blockElements separate the text of their children from the surrounding
// text.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

func markupText(text string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	doc.Find("script, style").Remove()

	var b strings.Builder
	writeText(&b, doc.Selection)

	return b.String()
}

// writeText appends the text nodes under s in document order.
func writeText(b *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(i int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		if name == "#text" {
			b.WriteString(c.Text())
			return
		}

		if blockElements[name] {
			b.WriteByte(' ')
		}

		writeText(b, c)

		if blockElements[name] {
			b.WriteByte(' ')
		}
	})
}
