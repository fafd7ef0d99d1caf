package models

// JobSummary is the provisional view of a posting taken from a listing page.
type JobSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
}

// Record widens the summary to the full schema with every detail field unset.
func (s JobSummary) Record() JobRecord {
	return JobRecord{ID: s.ID, Title: s.Title, SourceURL: s.SourceURL}
}

// JobRecord is the normalized posting extracted from a detail page.
// Title is always present (possibly empty); every pointer field is best-effort.
type JobRecord struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	CompanyName      *string `json:"company_name"`
	CompanyWebsite   *string `json:"company_website"`
	Category         *string `json:"category"`
	Country          *string `json:"country"`
	EmploymentType   *string `json:"employment_type"`
	LocationLabel    *string `json:"location_label"`
	Remote           *bool   `json:"remote"`
	SourceURL        string  `json:"source_url"`
	ApplyURL         *string `json:"apply_url"`
	PostedAt         *string `json:"posted_at"`
	PostedAtRelative *string `json:"posted_at_relative"`
	DescriptionText  *string `json:"description_text"`
	DescriptionHTML  *string `json:"description_html"`
}

// PageMeta describes pagination of a listing page. NextPage is nil unless HasNext.
type PageMeta struct {
	HasNext   bool    `json:"has_next"`
	NextPage  *int    `json:"next_page"`
	TotalText *string `json:"total_text"`
}

// Deref returns the pointed-to string or "".
func Deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
