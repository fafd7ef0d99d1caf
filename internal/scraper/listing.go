package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

var (
	jobHrefPattern  = regexp.MustCompile(`/jobs/[^/]+\.html(\?.*)?$`)
	nextPagePattern = regexp.MustCompile(`[?&]page=(\d+)`)
)

const totalTextPhrase = "job opportunities"

// ParseListing returns the detail URLs referenced by a listing page, in first-seen
// order without duplicates, together with its pagination metadata.
func ParseListing(body, base string, currentPage int) ([]string, models.PageMeta, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, models.PageMeta{}, err
	}
	return jobURLs(doc, base), pageMeta(doc, currentPage), nil
}

// ExtractSummaries pairs each job URL on a listing page with its anchor text.
func ExtractSummaries(body, base string) ([]models.JobSummary, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}
	return summaries(doc, base), nil
}

func eachJobAnchor(doc *goquery.Document, base string, fn func(link string, a *goquery.Selection)) {
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !jobHrefPattern.MatchString(href) {
			return
		}
		fn(ResolveURL(href, base), a)
	})
}

func jobURLs(doc *goquery.Document, base string) []string {
	var urls []string
	seen := map[string]struct{}{}
	eachJobAnchor(doc, base, func(link string, _ *goquery.Selection) {
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		urls = append(urls, link)
	})
	return urls
}

func summaries(doc *goquery.Document, base string) []models.JobSummary {
	titles := map[string]string{}
	eachJobAnchor(doc, base, func(link string, a *goquery.Selection) {
		titles[link] = cleanText(a.Text())
	})

	urls := jobURLs(doc, base)
	out := make([]models.JobSummary, 0, len(urls))
	for _, link := range urls {
		out = append(out, models.JobSummary{
			ID:        SlugFromDetailURL(link),
			Title:     titles[link],
			SourceURL: link,
		})
	}
	return out
}

func pageMeta(doc *goquery.Document, currentPage int) models.PageMeta {
	meta := models.PageMeta{TotalText: totalText(doc)}

	next := nextAnchor(doc)
	if next == nil {
		return meta
	}
	href := strings.TrimSpace(next.AttrOr("href", ""))
	if href == "" {
		return meta
	}

	page := currentPage + 1
	if m := nextPagePattern.FindStringSubmatch(href); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			page = n
		}
	}
	meta.HasNext = true
	meta.NextPage = &page
	return meta
}

// nextAnchor prefers an anchor labelled "Next" and falls back to rel="next".
func nextAnchor(doc *goquery.Document) *goquery.Selection {
	anchors := doc.Find("a")
	byText := anchors.FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(a.Text()), "next")
	}).First()
	if byText.Length() > 0 {
		return byText
	}

	byRel := anchors.FilterFunction(func(_ int, a *goquery.Selection) bool {
		for _, rel := range strings.Fields(a.AttrOr("rel", "")) {
			if strings.EqualFold(rel, "next") {
				return true
			}
		}
		return false
	}).First()
	if byRel.Length() > 0 {
		return byRel
	}
	return nil
}

// totalText finds the first text node mentioning the job count, e.g.
// "1,234 job opportunities waiting.".
func totalText(doc *goquery.Document) *string {
	var found *string
	var walk func(n *xhtml.Node) bool
	walk = func(n *xhtml.Node) bool {
		if skipsText(n) {
			return false
		}
		if n.Type == xhtml.TextNode && strings.Contains(strings.ToLower(n.Data), totalTextPhrase) {
			text := strings.TrimSpace(n.Data)
			found = &text
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, n := range doc.Nodes {
		if walk(n) {
			break
		}
	}
	return found
}
