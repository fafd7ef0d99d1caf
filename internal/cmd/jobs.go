package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MrJJimenez/awwjobs/internal/api"
	"github.com/MrJJimenez/awwjobs/internal/export"
	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/MrJJimenez/awwjobs/internal/scraper"
	"github.com/MrJJimenez/awwjobs/internal/ui"
)

type JobsCmd struct {
	Page     int    `help:"Listing page (1-based)." default:"1"`
	Include  string `help:"details fetches every detail page; list returns listing data only." enum:"details,list" default:"details"`
	Sort     string `help:"Sort details by posted date: posted_at or -posted_at." enum:",posted_at,-posted_at" default:""`
	Category string `help:"Category filter (accepted, not applied)."`
	Type     string `help:"Employment type filter (accepted, not applied)."`
	Country  string `help:"Country filter (accepted, not applied)."`
	Remote   string `help:"Remote filter (accepted, not applied)." enum:",true,false" default:""`
	OutputOptions
	Proxies string `help:"Comma-separated proxy URLs." env:"AWWJOBS_PROXIES"`
}

type OutputOptions struct {
	Format string `help:"Output format: table, csv, json, md, tsv." enum:",table,csv,json,md,tsv" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output string `name:"output" short:"o" help:"Write output to a file."`
}

func (j *JobsCmd) params() (models.ListParams, error) {
	if j.Page < 1 {
		return models.ListParams{}, fmt.Errorf("--page must be >= 1")
	}
	params := models.ListParams{
		Page:     j.Page,
		Category: strings.TrimSpace(j.Category),
		Type:     strings.TrimSpace(j.Type),
		Country:  strings.TrimSpace(j.Country),
	}
	if j.Remote != "" {
		remote := j.Remote == "true"
		params.Remote = &remote
	}
	return params, nil
}

func (j *JobsCmd) Run(ctx *Context) error {
	params, err := j.params()
	if err != nil {
		return err
	}
	source, err := ctx.source(j.Proxies)
	if err != nil {
		return err
	}

	runCtx, stop := signalContext()
	defer stop()

	if stopIndicator := ctx.UI.StartIndicator("Scraping"); stopIndicator != nil {
		defer stopIndicator()
	}

	records, meta, err := j.fetch(runCtx, source, params)
	if err != nil {
		return err
	}

	if err := writeOutput(ctx, j.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteRecords(w, records, format, opts)
	}); err != nil {
		return err
	}

	printListSummary(ctx, params.EffectivePage(), len(records), meta)
	return nil
}

func (j *JobsCmd) fetch(ctx context.Context, source scraper.Source, params models.ListParams) ([]models.JobRecord, models.PageMeta, error) {
	if j.Include == api.IncludeList {
		summaries, meta, err := source.ListOnly(ctx, params)
		if err != nil {
			return nil, meta, err
		}
		records := make([]models.JobRecord, 0, len(summaries))
		for _, summary := range summaries {
			records = append(records, summary.Record())
		}
		return records, meta, nil
	}

	records, meta, err := source.ListWithDetails(ctx, params)
	if err != nil {
		return nil, meta, err
	}
	if j.Sort != "" {
		scraper.SortByPostedAt(records, j.Sort == api.SortPostedAtDesc)
	}
	return records, meta, nil
}

// writeOutput resolves the format and destination, then hands both to write.
func writeOutput(ctx *Context, opts OutputOptions, write func(io.Writer, export.Format, export.WriteOptions) error) error {
	format, err := resolveFormat(ctx, opts.Format, opts.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(opts.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return write(writer, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	})
}

func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if format != "" {
		return export.ParseFormat(format)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func printListSummary(ctx *Context, page int, count int, meta models.PageMeta) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintln(ctx.Err, formatListSummary(page, count, meta))
}

func formatListSummary(page int, count int, meta models.PageMeta) string {
	next := "none"
	if meta.HasNext && meta.NextPage != nil {
		next = fmt.Sprintf("%d", *meta.NextPage)
	}
	summary := fmt.Sprintf("summary: page=%d jobs=%d next_page=%s", page, count, next)
	if meta.TotalText != nil {
		summary += fmt.Sprintf(" total=%q", *meta.TotalText)
	}
	return summary
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func isTTY(out io.Writer) bool {
	if out == nil {
		return false
	}
	return ui.IsTTY(out)
}
