package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/MrJJimenez/awwjobs/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func WriteRecords(w io.Writer, records []models.JobRecord, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatCSV:
		return writeCSV(w, records, ',')
	case FormatTSV:
		return writeCSV(w, records, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, records)
	default:
		return writeTable(w, records, opts)
	}
}

// WriteRecord writes a single record; JSON gets an object rather than a one-element array.
func WriteRecord(w io.Writer, record models.JobRecord, format Format, opts WriteOptions) error {
	if format == FormatJSON {
		return writeJSON(w, record)
	}
	return WriteRecords(w, []models.JobRecord{record}, format, opts)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(w io.Writer, records []models.JobRecord, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write(csvRow(record)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, records []models.JobRecord, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, record := range records {
		fmt.Fprintln(tw, strings.Join(tableRow(record, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, records []models.JobRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, record := range records {
		company := orDash(models.Deref(record.CompanyName))
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(record.Title), company),
			fmt.Sprintf("  Location: %s", orDash(location(record))),
			fmt.Sprintf("  URL: [Open listing](<%s>)", safe(record.SourceURL)),
		}
		if apply := models.Deref(record.ApplyURL); apply != "" {
			lines = append(lines, fmt.Sprintf("  Apply: <%s>", safe(apply)))
		}
		if record.Remote != nil && *record.Remote {
			lines = append(lines, "  Remote: yes")
		}
		if kind := models.Deref(record.EmploymentType); kind != "" {
			lines = append(lines, fmt.Sprintf("  Type: %s", safe(kind)))
		}
		if category := models.Deref(record.Category); category != "" {
			lines = append(lines, fmt.Sprintf("  Category: %s", safe(category)))
		}
		if posted := models.Deref(record.PostedAt); posted != "" {
			lines = append(lines, fmt.Sprintf("  Posted: %s", safe(posted)))
		}
		if text := models.Deref(record.DescriptionText); text != "" {
			lines = append(lines, fmt.Sprintf("  Summary: %s", snippet(text, 240)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"id",
		"title",
		"company_name",
		"company_website",
		"category",
		"country",
		"employment_type",
		"location_label",
		"remote",
		"source_url",
		"apply_url",
		"posted_at",
	}
}

func csvRow(record models.JobRecord) []string {
	return []string{
		record.ID,
		record.Title,
		models.Deref(record.CompanyName),
		models.Deref(record.CompanyWebsite),
		models.Deref(record.Category),
		models.Deref(record.Country),
		models.Deref(record.EmploymentType),
		models.Deref(record.LocationLabel),
		boolString(record.Remote),
		record.SourceURL,
		models.Deref(record.ApplyURL),
		models.Deref(record.PostedAt),
	}
}

func boolString(value *bool) string {
	if value == nil {
		return ""
	}
	return strconv.FormatBool(*value)
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func orDash(value string) string {
	if value = safe(value); value == "" {
		return "-"
	}
	return value
}

func location(record models.JobRecord) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{models.Deref(record.LocationLabel), models.Deref(record.Country)} {
		if part = safe(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func snippet(text string, limit int) string {
	runes := []rune(safe(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-3]) + "..."
}

func tableHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"posted",
		"url",
	}
}

func tableRow(record models.JobRecord, output *termenv.Output, opts WriteOptions) []string {
	link := safe(record.SourceURL)
	displayURL := "-"
	if link != "" {
		displayURL = link
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(link)
		}
		displayURL = ui.ColorizeLink(output, opts.ColorEnabled, displayURL)
		if opts.Hyperlinks {
			displayURL = hyperlink(link, displayURL)
		}
	}
	return []string{
		safe(record.ID),
		orDash(record.Title),
		orDash(models.Deref(record.CompanyName)),
		orDash(models.Deref(record.PostedAt)),
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
