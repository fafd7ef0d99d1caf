package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MrJJimenez/awwjobs/internal/models"
)

func strPtr(v string) *string { return &v }

func sampleRecords() []models.JobRecord {
	remote := true
	return []models.JobRecord{
		{
			ID:              "senior-designer",
			Title:           "Senior Designer",
			CompanyName:     strPtr("Studio X"),
			Country:         strPtr("ES"),
			LocationLabel:   strPtr("Barcelona"),
			Remote:          &remote,
			SourceURL:       "https://www.awwwards.com/jobs/senior-designer.html",
			ApplyURL:        strPtr("https://studiox.com/careers"),
			PostedAt:        strPtr("2024-05-02"),
			DescriptionText: strPtr(strings.Repeat("a", 300)),
		},
		{ID: "writer", Title: "Writer", SourceURL: "https://www.awwwards.com/jobs/writer.html"},
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[1][2] != "Studio X" || rows[1][8] != "true" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][2] != "" || rows[2][8] != "" {
		t.Fatalf("unset fields should be empty: %v", rows[2])
	}
}

func TestWriteRecordJSONIsObject(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecord(&buf, sampleRecords()[1], FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("write json: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["id"] != "writer" || got["company_name"] != nil {
		t.Fatalf("unexpected json: %v", got)
	}
	if _, ok := got["posted_at_relative"]; !ok {
		t.Fatalf("expected null fields to be present")
	}
}

func TestWriteRecordsMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords(), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"**Senior Designer** (Studio X)", "Location: Barcelona, ES", "Remote: yes", "**Writer** (-)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "...") {
		t.Fatalf("expected long description to be truncated")
	}

	buf.Reset()
	if err := WriteRecords(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("write empty markdown: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No results." {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestWriteRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("write table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "id") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], "writer") || !strings.Contains(lines[2], "-") {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatTable, "markdown": FormatMarkdown, "JSON": FormatJSON, "tsv": FormatTSV}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected an error for unknown format")
	}
}

func TestShortURLLabel(t *testing.T) {
	if got := shortURLLabel("https://www.awwwards.com/jobs/writer.html"); got != "awwwards.com/jobs/writer.html" {
		t.Fatalf("unexpected label: %s", got)
	}
}
