package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Senior\n\t Designer  ", "Senior Designer"},
		{"Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"Use &lt;div&gt;", "Use &lt;div&gt;"},
		{"", ""},
		{" \n ", ""},
	}

	for _, tc := range cases {
		if got := cleanText(tc.in); got != tc.want {
			t.Fatalf("cleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOptionalText(t *testing.T) {
	if got := optionalText("   "); got != nil {
		t.Fatalf("expected nil for blank text, got %q", *got)
	}
	got := optionalText(" Studio  X ")
	if got == nil || *got != "Studio X" {
		t.Fatalf("unexpected optional text: %v", got)
	}
}

func TestStripMarkup(t *testing.T) {
	got := stripMarkup("<p>Join us.</p><p>Design things &amp; more.</p>")
	if got != "Join us. Design things & more." {
		t.Fatalf("unexpected stripped text: %q", got)
	}
}

func TestStripMarkupDecodesEntities(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>Tom &amp; Jerry</p>", "Tom & Jerry"},
		{"<p>Use &lt;b&gt; tags</p>", "Use <b> tags"},
		{"Caf&eacute; &#8212; bar", "Café — bar"},
	}

	for _, tc := range cases {
		if got := stripMarkup(tc.in); got != tc.want {
			t.Fatalf("stripMarkup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSpacedTextSkipsScripts(t *testing.T) {
	doc := mustDoc(t, `<div id="c">One<p>Two</p><script>track()</script><style>p{}</style>Three</div>`)
	got := spacedText(doc.Find("#c"))
	if got != "One Two Three" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestDecodeJSONLD(t *testing.T) {
	data, err := decodeJSONLD("<!-- {\"title\": \"Designer\u2028\"} -->")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(string(data), `"Designer"`) {
		t.Fatalf("unexpected payload: %s", data)
	}

	if _, err := decodeJSONLD("{not json"); err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}
