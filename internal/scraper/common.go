package scraper

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
)

var textPolicy = func() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AddSpaceWhenStrippingTag(true)
	return policy
}()

func parseDocument(body string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// cleanText collapses whitespace. Text read from a parsed document is already
// entity-decoded, so it is not unescaped again here.
func cleanText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// optionalText cleans value and maps an empty result to nil.
func optionalText(value string) *string {
	value = cleanText(value)
	if value == "" {
		return nil
	}
	return &value
}

func stripMarkup(markup string) string {
	return cleanText(html.UnescapeString(textPolicy.Sanitize(markup)))
}

func skipsText(n *xhtml.Node) bool {
	return n.Type == xhtml.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript")
}

// spacedText joins every text node under sel with a space so adjacent
// block elements don't run together.
func spacedText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if skipsText(n) {
			return
		}
		if n.Type == xhtml.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return cleanText(b.String())
}

func decodeJSONLD(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "\u2028", "")
	raw = strings.ReplaceAll(raw, "\u2029", "")

	var data json.RawMessage
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}
