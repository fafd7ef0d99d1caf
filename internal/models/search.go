package models

// ListParams captures the listing inputs. Only Page reaches the source;
// the remaining filters are accepted and carried through unapplied.
type ListParams struct {
	Page     int
	Category string
	Type     string
	Country  string
	Remote   *bool
}

// HasFilters reports whether any filter beyond the page was supplied.
func (p ListParams) HasFilters() bool {
	return p.Category != "" || p.Type != "" || p.Country != "" || p.Remote != nil
}

// EffectivePage clamps the page number to the first page.
func (p ListParams) EffectivePage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
