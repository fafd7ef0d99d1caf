package scraper

import (
	"context"

	"github.com/MrJJimenez/awwjobs/internal/models"
)

// TextFetcher retrieves a page body. *network.Fetcher satisfies it.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Source is the pipeline the API and CLI run against.
type Source interface {
	SourceURL() string
	ListOnly(ctx context.Context, params models.ListParams) ([]models.JobSummary, models.PageMeta, error)
	ListWithDetails(ctx context.Context, params models.ListParams) ([]models.JobRecord, models.PageMeta, error)
	JobByID(ctx context.Context, id string) (models.JobRecord, error)
}
