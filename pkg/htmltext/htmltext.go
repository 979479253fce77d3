// Package htmltext flattens HTML fragments into plain terminal text.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockTags end a paragraph when flattened.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "blockquote": true, "tr": true,
}

// Flatten returns the text content of an HTML fragment. Block elements
// become paragraph breaks, list items get a bullet and runs of whitespace
// collapse. Input without markup is returned trimmed.
func Flatten(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	doc.Find("script, style").Remove()

	var (
		paras []string
		cur   strings.Builder
	)
	flush := func() {
		if p := collapse(cur.String()); p != "" {
			paras = append(paras, p)
		}
		cur.Reset()
	}

	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, node *goquery.Selection) {
			tag := goquery.NodeName(node)
			switch {
			case tag == "#text":
				cur.WriteString(node.Text())
			case tag == "br":
				flush()
			case blockTags[tag]:
				flush()
				if tag == "li" {
					cur.WriteString("• ")
				}
				walk(node)
				flush()
			default:
				walk(node)
			}
		})
	}
	walk(doc.Find("body"))
	flush()

	return strings.Join(paras, "\n\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
