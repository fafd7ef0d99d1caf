package scraper

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/rs/zerolog"
)

type fakePage struct {
	body  string
	err   error
	delay time.Duration
}

type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string]fakePage
	fetched []string
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	page, ok := f.pages[url]
	f.mu.Unlock()

	if page.delay > 0 {
		select {
		case <-time.After(page.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if !ok {
		return "", fmt.Errorf("unexpected fetch of %s", url)
	}
	return page.body, page.err
}

func (f *fakeFetcher) Fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func detailPage(title, posted string) string {
	return fmt.Sprintf(`<script type="application/ld+json">{"@type":"JobPosting","title":%q,"datePosted":%q}</script>`, title, posted)
}

func threeJobListing() string {
	return `
<p>3 job opportunities</p>
<a href="/jobs/alpha.html">Alpha</a>
<a href="/jobs/beta.html">Beta</a>
<a href="/jobs/gamma.html">Gamma</a>
<a href="/jobs/?page=2">Next</a>`
}

func newTestSource(pages map[string]fakePage) (*Awwwards, *fakeFetcher) {
	fetcher := &fakeFetcher{pages: pages}
	return NewAwwwards(fetcher, testBase, zerolog.Nop()), fetcher
}

func TestListWithDetailsDropsFailuresAndKeepsOrder(t *testing.T) {
	source, _ := newTestSource(map[string]fakePage{
		testBase:                 {body: threeJobListing()},
		testBase + "alpha.html": {body: detailPage("Alpha Designer", "2024-01-01"), delay: 30 * time.Millisecond},
		testBase + "beta.html":  {err: errors.New("connection reset")},
		testBase + "gamma.html": {body: detailPage("Gamma Writer", "2024-02-01")},
	})

	records, meta, err := source.ListWithDetails(context.Background(), models.ListParams{Page: 1})
	if err != nil {
		t.Fatalf("list with details: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "alpha" || records[1].ID != "gamma" {
		t.Fatalf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}
	if records[0].Title != "Alpha Designer" {
		t.Fatalf("unexpected title: %q", records[0].Title)
	}
	if !meta.HasNext || meta.NextPage == nil || *meta.NextPage != 2 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestListWithDetailsListingFailure(t *testing.T) {
	cause := errors.New("listing down")
	source, _ := newTestSource(map[string]fakePage{
		testBase + "?page=3": {err: cause},
	})

	_, _, err := source.ListWithDetails(context.Background(), models.ListParams{Page: 3})
	if !errors.Is(err, cause) {
		t.Fatalf("expected listing error to be wrapped, got %v", err)
	}
}

func TestListOnlyFetchesOnlyTheListing(t *testing.T) {
	source, fetcher := newTestSource(map[string]fakePage{
		testBase: {body: threeJobListing()},
	})

	summaries, meta, err := source.ListOnly(context.Background(), models.ListParams{Page: 0, Country: "ES"})
	if err != nil {
		t.Fatalf("list only: %v", err)
	}
	if len(summaries) != 3 || summaries[2].ID != "gamma" || summaries[2].Title != "Gamma" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
	if meta.TotalText == nil || *meta.TotalText != "3 job opportunities" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if fetched := fetcher.Fetched(); len(fetched) != 1 || fetched[0] != testBase {
		t.Fatalf("expected a single listing fetch, got %v", fetched)
	}
}

func TestJobByID(t *testing.T) {
	source, _ := newTestSource(map[string]fakePage{
		testBase + "alpha.html": {body: designerPage},
	})

	first, err := source.JobByID(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("job by id: %v", err)
	}
	second, err := source.JobByID(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("job by id: %v", err)
	}
	if first.ID != "alpha" || first.SourceURL != testBase+"alpha.html" {
		t.Fatalf("unexpected record: %+v", first)
	}

	populated := map[string]*string{
		"company_name":     first.CompanyName,
		"company_website":  first.CompanyWebsite,
		"apply_url":        first.ApplyURL,
		"category":         first.Category,
		"employment_type":  first.EmploymentType,
		"country":          first.Country,
		"location_label":   first.LocationLabel,
		"posted_at":        first.PostedAt,
		"description_text": first.DescriptionText,
		"description_html": first.DescriptionHTML,
	}
	for name, value := range populated {
		if value == nil {
			t.Fatalf("expected %s to be populated", name)
		}
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical records across calls:\n%+v\n%+v", first, second)
	}
}

func TestJobByIDNotFound(t *testing.T) {
	source, _ := newTestSource(map[string]fakePage{
		testBase + "missing.html": {body: "<html><body><p>This job is gone.</p></body></html>"},
	})

	_, err := source.JobByID(context.Background(), "missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.ID != "missing" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestJobByIDFetchError(t *testing.T) {
	cause := errors.New("timeout")
	source, _ := newTestSource(map[string]fakePage{
		testBase + "slow.html": {err: cause},
	})

	_, err := source.JobByID(context.Background(), "slow")
	if !errors.Is(err, cause) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		t.Fatalf("fetch failure must not be reported as not found")
	}
}
