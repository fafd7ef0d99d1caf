package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrJJimenez/awwjobs/internal/config"
	"github.com/MrJJimenez/awwjobs/internal/export"
	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/MrJJimenez/awwjobs/internal/scraper"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
)

type stubSource struct {
	records   []models.JobRecord
	summaries []models.JobSummary
	meta      models.PageMeta
	params    models.ListParams
	detailed  bool
}

func (s *stubSource) SourceURL() string { return scraper.DefaultSourceURL }

func (s *stubSource) ListOnly(_ context.Context, params models.ListParams) ([]models.JobSummary, models.PageMeta, error) {
	s.params = params
	return s.summaries, s.meta, nil
}

func (s *stubSource) ListWithDetails(_ context.Context, params models.ListParams) ([]models.JobRecord, models.PageMeta, error) {
	s.params = params
	s.detailed = true
	return append([]models.JobRecord(nil), s.records...), s.meta, nil
}

func (s *stubSource) JobByID(_ context.Context, id string) (models.JobRecord, error) {
	for _, record := range s.records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.JobRecord{}, &scraper.NotFoundError{ID: id}
}

func strPtr(v string) *string { return &v }

func testContext(t *testing.T, source scraper.Source) (*Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AWWJOBS_PROXIES", "")

	var out, errOut bytes.Buffer
	ctx := &Context{
		Out:     &out,
		Err:     &errOut,
		Config:  config.DefaultConfig(),
		Logger:  zerolog.Nop(),
		Version: "test",
		NewSource: func(models.ScraperConfig, zerolog.Logger) (scraper.Source, error) {
			return source, nil
		},
	}
	return ctx, &out, &errOut
}

func TestResolveFormatRespectsGlobalFlags(t *testing.T) {
	ctx := &Context{Out: io.Discard, JSONOutput: true}
	got, err := resolveFormat(ctx, "md", "jobs.csv")
	if err != nil || got != export.FormatJSON {
		t.Fatalf("resolveFormat() = %q, %v, want json", got, err)
	}

	ctx = &Context{Out: io.Discard, PlainText: true}
	got, err = resolveFormat(ctx, "", "")
	if err != nil || got != export.FormatTSV {
		t.Fatalf("resolveFormat() = %q, %v, want tsv", got, err)
	}

	ctx = &Context{Out: io.Discard}
	got, err = resolveFormat(ctx, "", "jobs.csv")
	if err != nil || got != export.FormatCSV {
		t.Fatalf("resolveFormat() = %q, %v, want csv", got, err)
	}
}

func TestJobsCommandSortsDetails(t *testing.T) {
	source := &stubSource{
		records: []models.JobRecord{
			{ID: "a", Title: "A", PostedAt: strPtr("2024-01-01")},
			{ID: "b", Title: "B"},
			{ID: "c", Title: "C", PostedAt: strPtr("2024-03-01")},
		},
	}
	ctx, out, errOut := testContext(t, source)
	ctx.JSONOutput = true

	cmd := &JobsCmd{Page: 1, Include: "details", Sort: "-posted_at", Country: "ES"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got []models.JobRecord
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 || got[0].ID != "c" || got[1].ID != "a" || got[2].ID != "b" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if source.params.Country != "ES" {
		t.Fatalf("country filter not carried: %+v", source.params)
	}
	if !strings.Contains(errOut.String(), "summary: page=1 jobs=3 next_page=none") {
		t.Fatalf("unexpected summary: %q", errOut.String())
	}
}

func TestJobsCommandListModeWritesFile(t *testing.T) {
	next := 3
	source := &stubSource{
		summaries: []models.JobSummary{{ID: "a", Title: "Alpha", SourceURL: scraper.DefaultSourceURL + "a.html"}},
		meta:      models.PageMeta{HasNext: true, NextPage: &next},
	}
	ctx, _, errOut := testContext(t, source)
	path := filepath.Join(t.TempDir(), "jobs.csv")

	cmd := &JobsCmd{Page: 2, Include: "list", Remote: "true", OutputOptions: OutputOptions{Output: path}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if source.detailed {
		t.Fatalf("list mode must not fetch details")
	}
	if source.params.Page != 2 || source.params.Remote == nil || !*source.params.Remote {
		t.Fatalf("unexpected params: %+v", source.params)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,title") || !strings.Contains(string(data), "a,Alpha") {
		t.Fatalf("unexpected csv: %s", data)
	}
	if !strings.Contains(errOut.String(), "next_page=3") {
		t.Fatalf("unexpected summary: %q", errOut.String())
	}
}

func TestJobsCommandRejectsBadPage(t *testing.T) {
	ctx, _, _ := testContext(t, &stubSource{})
	if err := (&JobsCmd{Page: 0, Include: "details"}).Run(ctx); err == nil {
		t.Fatalf("expected an error for page 0")
	}
}

func TestJobCommand(t *testing.T) {
	source := &stubSource{records: []models.JobRecord{{ID: "alpha", Title: "Alpha"}}}
	ctx, out, _ := testContext(t, source)
	ctx.JSONOutput = true

	if err := (&JobCmd{ID: "alpha"}).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	var got models.JobRecord
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "alpha" {
		t.Fatalf("unexpected record: %+v", got)
	}

	err := (&JobCmd{ID: "missing"}).Run(ctx)
	var notFound *scraper.NotFoundError
	if !errors.As(err, &notFound) || notFound.ID != "missing" {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	ctx, out, _ := testContext(t, &stubSource{})
	if err := (&VersionCmd{}).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "awwwards-jobs-scraper test\n" {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestCLIParsesJobsFlags(t *testing.T) {
	for _, key := range []string{"AWWJOBS_COLOR", "AWWJOBS_JSON", "AWWJOBS_VERBOSE", "AWWJOBS_PROXIES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cli := NewCLI()
	parser, err := kong.New(cli, kong.Name("awwjobs"), kong.Vars{"version": "test"})
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	if _, err := parser.Parse([]string{"jobs", "--page=2", "--include=list", "--sort=-posted_at", "-o", "out.csv"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cli.Jobs.Page != 2 || cli.Jobs.Include != "list" || cli.Jobs.Sort != "-posted_at" || cli.Jobs.Output != "out.csv" {
		t.Fatalf("unexpected flags: %+v", cli.Jobs)
	}

	if _, err := parser.Parse([]string{"jobs", "--include=everything"}); err == nil {
		t.Fatalf("expected enum validation to fail")
	}
}
