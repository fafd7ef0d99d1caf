package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Awwwards runs the listing and detail pipeline against the awwwards.com jobs board.
type Awwwards struct {
	fetcher TextFetcher
	baseURL string
	logger  zerolog.Logger
}

var _ Source = (*Awwwards)(nil)

func NewAwwwards(fetcher TextFetcher, baseURL string, logger zerolog.Logger) *Awwwards {
	return &Awwwards{
		fetcher: fetcher,
		baseURL: NormalizeBase(baseURL),
		logger:  logger.With().Str("source", SiteAwwwards).Logger(),
	}
}

func (a *Awwwards) SourceURL() string {
	return a.baseURL
}

// ListOnly fetches one listing page and returns its summaries. No detail page is fetched.
func (a *Awwwards) ListOnly(ctx context.Context, params models.ListParams) ([]models.JobSummary, models.PageMeta, error) {
	body, page, err := a.fetchListing(ctx, params)
	if err != nil {
		return nil, models.PageMeta{}, err
	}
	doc, err := parseDocument(body)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("parse listing page %d: %w", page, err)
	}
	return summaries(doc, a.baseURL), pageMeta(doc, page), nil
}

// ListWithDetails fetches one listing page and every detail page it references.
// Detail pages that fail are logged and dropped; the rest keep listing order.
func (a *Awwwards) ListWithDetails(ctx context.Context, params models.ListParams) ([]models.JobRecord, models.PageMeta, error) {
	body, page, err := a.fetchListing(ctx, params)
	if err != nil {
		return nil, models.PageMeta{}, err
	}
	doc, err := parseDocument(body)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("parse listing page %d: %w", page, err)
	}

	urls := jobURLs(doc, a.baseURL)
	meta := pageMeta(doc, page)

	results := make([]*models.JobRecord, len(urls))
	var g errgroup.Group
	for i, link := range urls {
		i, link := i, link
		g.Go(func() error {
			record, err := a.detail(ctx, link)
			if err != nil {
				a.logger.Warn().Err(err).Str("url", link).Msg("detail page dropped")
				return nil
			}
			results[i] = &record
			return nil
		})
	}
	_ = g.Wait()

	records := make([]models.JobRecord, 0, len(urls))
	for _, record := range results {
		if record != nil {
			records = append(records, *record)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, models.PageMeta{}, err
	}

	a.logger.Debug().
		Int("page", page).
		Int("listed", len(urls)).
		Int("extracted", len(records)).
		Msg("listing with details")
	return records, meta, nil
}

// JobByID fetches and extracts a single detail page. A page without a title is
// reported as *NotFoundError.
func (a *Awwwards) JobByID(ctx context.Context, id string) (models.JobRecord, error) {
	id = strings.TrimSpace(id)
	record, err := a.detail(ctx, DetailURL(a.baseURL, id))
	if err != nil {
		return models.JobRecord{}, err
	}
	if record.Title == "" {
		return models.JobRecord{}, &NotFoundError{ID: id}
	}
	return record, nil
}

func (a *Awwwards) fetchListing(ctx context.Context, params models.ListParams) (string, int, error) {
	page := params.EffectivePage()
	if params.HasFilters() {
		a.logger.Debug().
			Str("category", params.Category).
			Str("type", params.Type).
			Str("country", params.Country).
			Msg("filters are not applied to the listing")
	}

	target := ListingURL(a.baseURL, page)
	body, err := a.fetcher.FetchText(ctx, target)
	if err != nil {
		return "", page, fmt.Errorf("fetch listing page %d: %w", page, err)
	}
	return body, page, nil
}

// detail fetches and extracts one page. A panic in extraction becomes an error so
// one malformed page cannot take down its siblings.
func (a *Awwwards) detail(ctx context.Context, detailURL string) (record models.JobRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract %s: panic: %v", detailURL, r)
		}
	}()

	body, err := a.fetcher.FetchText(ctx, detailURL)
	if err != nil {
		return models.JobRecord{}, err
	}
	return ExtractDetail(body, detailURL)
}
