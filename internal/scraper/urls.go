package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultSourceURL is the listing root of the job board.
const DefaultSourceURL = "https://www.awwwards.com/jobs/"

var (
	schemePattern     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	detailSlugPattern = regexp.MustCompile(`/([^/?#]+)\.html(?:[?#].*)?$`)
)

// NormalizeBase makes sure the listing base URL ends with a slash.
func NormalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultSourceURL
	}
	return strings.TrimRight(base, "/") + "/"
}

// ResolveURL turns an href found in markup into an absolute URL. Absolute hrefs are
// returned as-is, root-relative ones get the base's origin, anything else is taken
// relative to the listing base.
func ResolveURL(href, base string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if schemePattern.MatchString(href) {
		return href
	}

	base = NormalizeBase(base)
	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" {
		return base + strings.TrimPrefix(href, "/")
	}
	if strings.HasPrefix(href, "//") {
		return parsed.Scheme + ":" + href
	}
	if strings.HasPrefix(href, "/") {
		return parsed.Scheme + "://" + parsed.Host + href
	}
	return base + href
}

// SlugFromDetailURL derives the job id from a detail URL: the segment before ".html",
// or the last non-empty path segment when the URL has another shape.
func SlugFromDetailURL(raw string) string {
	if m := detailSlugPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if u, err := url.Parse(raw); err == nil {
		if segment := lastSegment(u.Path); segment != "" {
			return segment
		}
	}
	return lastSegment(raw)
}

func lastSegment(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// DetailURL builds the detail page URL for id; it is the inverse of SlugFromDetailURL.
func DetailURL(base, id string) string {
	return NormalizeBase(base) + url.PathEscape(id) + ".html"
}

// ListingURL returns the listing page URL. Page 1 is the bare base.
func ListingURL(base string, page int) string {
	base = NormalizeBase(base)
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%s?page=%d", base, page)
}

func directoryOf(raw string) string {
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		return raw[:i+1]
	}
	return raw
}
