package scraper

import (
	"regexp"
	"strings"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/PuerkitoBio/goquery"
)

var (
	isoDatePattern     = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
	applyAnchorPattern = regexp.MustCompile(`(?i)(more info|apply)`)
	contentClass       = regexp.MustCompile(`(?i)(job|content)`)
)

// ExtractDetail builds a JobRecord from a detail page. Missing data never fails
// the extraction; it only leaves the field nil.
func ExtractDetail(body, detailURL string) (models.JobRecord, error) {
	doc, err := parseDocument(body)
	if err != nil {
		return models.JobRecord{}, err
	}
	return extractDetail(doc, detailURL), nil
}

func extractDetail(doc *goquery.Document, detailURL string) models.JobRecord {
	posting := lookupDocument(doc).Posting()

	companyName, companyWebsite := extractCompany(posting)
	country, label := extractLocation(posting)
	descText, descHTML := extractDescription(posting, doc)

	return models.JobRecord{
		ID:              SlugFromDetailURL(detailURL),
		Title:           extractTitle(posting, doc),
		CompanyName:     companyName,
		CompanyWebsite:  companyWebsite,
		Category:        optionalText(string(posting.OccupationalCategory)),
		Country:         country,
		EmploymentType:  optionalText(string(posting.EmploymentType)),
		LocationLabel:   label,
		Remote:          detectRemote(posting, label),
		SourceURL:       detailURL,
		ApplyURL:        extractApplyURL(posting, doc, directoryOf(detailURL)),
		PostedAt:        normalizePostedAt(string(posting.DatePosted)),
		DescriptionText: descText,
		DescriptionHTML: descHTML,
	}
}

func extractTitle(posting ldJobPosting, doc *goquery.Document) string {
	if title := cleanText(string(posting.Title)); title != "" {
		return title
	}
	return cleanText(doc.Find("h1").First().Text())
}

func extractCompany(posting ldJobPosting) (*string, *string) {
	org := posting.HiringOrganization
	website := firstNonEmpty(string(org.SameAs), string(org.URL))
	return optionalText(string(org.Name)), optionalText(website)
}

func extractApplyURL(posting ldJobPosting, doc *goquery.Document, base string) *string {
	structured := firstNonEmpty(
		string(posting.HiringOrganization.URL),
		string(posting.ApplicationContact),
		string(posting.URL),
	)
	if link := optionalText(structured); link != nil {
		return link
	}

	anchor := doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return applyAnchorPattern.MatchString(a.Text())
	}).First()
	if anchor.Length() == 0 {
		return nil
	}
	return optionalText(ResolveURL(anchor.AttrOr("href", ""), base))
}

func extractLocation(posting ldJobPosting) (country *string, label *string) {
	place := posting.JobLocation
	country = optionalText(string(place.Address.AddressCountry))
	label = optionalText(string(place.Address.AddressLocality))
	if label == nil {
		label = optionalText(string(place.Name))
	}
	return country, label
}

// detectRemote is true when the posting declares applicant location requirements
// or the location label mentions remote work (which covers a bare "REMOTE" label).
// It stays nil rather than false when neither signal is present.
func detectRemote(posting ldJobPosting, label *string) *bool {
	remote := bool(posting.ApplicantLocationRequirements)
	if label != nil && strings.Contains(strings.ToLower(*label), "remote") {
		remote = true
	}
	if !remote {
		return nil
	}
	return &remote
}

// normalizePostedAt keeps the YYYY-MM-DD prefix of an ISO timestamp and passes
// other formats through untouched.
func normalizePostedAt(raw string) *string {
	value := optionalText(raw)
	if value == nil {
		return nil
	}
	if m := isoDatePattern.FindStringSubmatch(*value); m != nil {
		return &m[1]
	}
	return value
}

func extractDescription(posting ldJobPosting, doc *goquery.Document) (text *string, markup *string) {
	if raw := strings.TrimSpace(string(posting.Description)); raw != "" {
		return optionalText(stripMarkup(raw)), &raw
	}

	container := doc.Find("article").First()
	if container.Length() == 0 {
		container = doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return contentClass.MatchString(s.AttrOr("class", ""))
		}).First()
	}
	if container.Length() == 0 {
		return nil, nil
	}
	return optionalText(spacedText(container)), nil
}
