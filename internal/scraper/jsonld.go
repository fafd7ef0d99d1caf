package scraper

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const jobPostingType = "JobPosting"

// The ld* types decode loosely shaped schema.org values. Their UnmarshalJSON
// methods never fail: a value of an unexpected shape decodes as absent.

// ldText is a textual value with HTML entities decoded; numbers are formatted, arrays joined and objects
// reduced to their name.
type ldText string

func (t *ldText) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*t = ldText(textValue(v))
	return nil
}

// ldLink is a single URL; arrays contribute their first usable entry.
type ldLink string

func (l *ldLink) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*l = ldLink(linkValue(v))
	return nil
}

// ldMarkup only accepts a plain string.
type ldMarkup string

func (m *ldMarkup) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	*m = ldMarkup(s)
	return nil
}

// ldPresence records whether a value was given and non-empty.
type ldPresence bool

func (p *ldPresence) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*p = ldPresence(truthy(v))
	return nil
}

type ldTypes []string

func (t *ldTypes) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch val := v.(type) {
	case string:
		*t = ldTypes{val}
	case []any:
		out := make(ldTypes, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		*t = out
	}
	return nil
}

func (t ldTypes) Has(name string) bool {
	for _, typ := range t {
		if typ == name {
			return true
		}
	}
	return false
}

type ldOrganization struct {
	Name   ldText `json:"name"`
	SameAs ldLink `json:"sameAs"`
	URL    ldLink `json:"url"`
}

func (o *ldOrganization) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch val := v.(type) {
	case string:
		*o = ldOrganization{Name: ldText(textValue(val))}
	case []any:
		if len(val) > 0 {
			first, _ := json.Marshal(val[0])
			return o.UnmarshalJSON(first)
		}
	case map[string]any:
		type plain ldOrganization
		var p plain
		_ = json.Unmarshal(data, &p)
		*o = ldOrganization(p)
	}
	return nil
}

type ldAddress struct {
	AddressCountry  ldText `json:"addressCountry"`
	AddressLocality ldText `json:"addressLocality"`
}

func (a *ldAddress) UnmarshalJSON(data []byte) error {
	type plain ldAddress
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*a = ldAddress(p)
	return nil
}

type ldPlace struct {
	Name    ldText    `json:"name"`
	Address ldAddress `json:"address"`
}

// ldLocation keeps the first place when jobLocation is a list.
type ldLocation struct {
	ldPlace
}

func (l *ldLocation) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}
	if _, ok := v.(map[string]any); !ok {
		return nil
	}
	raw, _ := json.Marshal(v)
	var place ldPlace
	_ = json.Unmarshal(raw, &place)
	l.ldPlace = place
	return nil
}

type ldJobPosting struct {
	Types                         ldTypes        `json:"@type"`
	Title                         ldText         `json:"title"`
	URL                           ldLink         `json:"url"`
	DatePosted                    ldText         `json:"datePosted"`
	Description                   ldMarkup       `json:"description"`
	EmploymentType                ldText         `json:"employmentType"`
	OccupationalCategory          ldText         `json:"occupationalCategory"`
	HiringOrganization            ldOrganization `json:"hiringOrganization"`
	JobLocation                   ldLocation     `json:"jobLocation"`
	ApplicantLocationRequirements ldPresence     `json:"applicantLocationRequirements"`
	ApplicationContact            ldLink         `json:"applicationContact"`
}

type postingKind int

const (
	postingAbsent postingKind = iota
	postingTopLevel
	postingInGraph
)

// postingLookup is the outcome of looking for a JobPosting in a page's JSON-LD.
type postingLookup struct {
	kind    postingKind
	posting ldJobPosting
}

// Posting returns the posting found, or the empty posting when none was found
// so every field read yields absence.
func (p postingLookup) Posting() ldJobPosting {
	switch p.kind {
	case postingTopLevel, postingInGraph:
		return p.posting
	case postingAbsent:
		return ldJobPosting{}
	default:
		return ldJobPosting{}
	}
}

func (p postingLookup) Found() bool {
	return p.kind != postingAbsent
}

// lookupDocument returns the first JobPosting across the page's JSON-LD blocks,
// either at the top level of a block or one level down in its @graph.
func lookupDocument(doc *goquery.Document) postingLookup {
	var lookup postingLookup
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		lookup = lookupBlock(s.Text())
		return !lookup.Found()
	})
	return lookup
}

func lookupBlock(raw string) postingLookup {
	data, err := decodeJSONLD(raw)
	if err != nil {
		return postingLookup{}
	}
	node, fields, ok := firstObject(data)
	if !ok {
		return postingLookup{}
	}

	if typesOf(fields).Has(jobPostingType) {
		return decodePosting(node, postingTopLevel)
	}

	var graph []json.RawMessage
	if err := json.Unmarshal(fields["@graph"], &graph); err != nil {
		return postingLookup{}
	}
	for _, item := range graph {
		var itemFields map[string]json.RawMessage
		if err := json.Unmarshal(item, &itemFields); err != nil {
			continue
		}
		if typesOf(itemFields).Has(jobPostingType) {
			return decodePosting(item, postingInGraph)
		}
	}
	return postingLookup{}
}

// firstObject returns data itself when it is an object, or the first object of an array.
func firstObject(data json.RawMessage) (json.RawMessage, map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		return data, fields, true
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil, false
	}
	for _, item := range items {
		var itemFields map[string]json.RawMessage
		if err := json.Unmarshal(item, &itemFields); err == nil && itemFields != nil {
			return item, itemFields, true
		}
	}
	return nil, nil, false
}

func typesOf(fields map[string]json.RawMessage) ldTypes {
	var types ldTypes
	if raw, ok := fields["@type"]; ok {
		_ = json.Unmarshal(raw, &types)
	}
	return types
}

func decodePosting(data json.RawMessage, kind postingKind) postingLookup {
	var posting ldJobPosting
	if err := json.Unmarshal(data, &posting); err != nil {
		return postingLookup{}
	}
	return postingLookup{kind: kind, posting: posting}
}

func textValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(html.UnescapeString(val))
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := textValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return firstNonEmpty(textValue(val["name"]), textValue(val["@id"]))
	}
	return ""
}

func linkValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(html.UnescapeString(val))
	case []any:
		for _, item := range val {
			if s := linkValue(item); s != "" {
				return s
			}
		}
	case map[string]any:
		return firstNonEmpty(linkValue(val["url"]), linkValue(val["@id"]))
	}
	return ""
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
