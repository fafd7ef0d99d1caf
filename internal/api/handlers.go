package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/MrJJimenez/awwjobs/internal/scraper"
	"github.com/rs/zerolog"
)

const (
	IncludeDetails = "details"
	IncludeList    = "list"

	SortPostedAt     = "posted_at"
	SortPostedAtDesc = "-posted_at"
)

type HealthHandler struct {
	AppName string
	Version string
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"app":              h.AppName,
		"version":          h.Version,
		"source_reachable": true,
	})
}

type JobsMeta struct {
	Source    string  `json:"source"`
	Page      int     `json:"page"`
	HasNext   bool    `json:"has_next"`
	NextPage  *int    `json:"next_page"`
	TotalText *string `json:"total_text"`
}

type JobsResponse struct {
	Meta JobsMeta           `json:"meta"`
	Data []models.JobRecord `json:"data"`
}

// JobsQuery is the validated form of the GET /jobs query string.
type JobsQuery struct {
	Params  models.ListParams
	Include string
	Sort    string
}

type JobsHandler struct {
	Source scraper.Source
	Logger zerolog.Logger
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := ParseJobsQuery(r.URL.Query())
	if err != nil {
		WriteError(w, r, http.StatusUnprocessableEntity, codeValidation, err.Error())
		return
	}

	var (
		records []models.JobRecord
		meta    models.PageMeta
	)
	if query.Include == IncludeList {
		var summaries []models.JobSummary
		summaries, meta, err = h.Source.ListOnly(r.Context(), query.Params)
		records = make([]models.JobRecord, 0, len(summaries))
		for _, summary := range summaries {
			records = append(records, summary.Record())
		}
	} else {
		records, meta, err = h.Source.ListWithDetails(r.Context(), query.Params)
		if err == nil && query.Sort != "" {
			scraper.SortByPostedAt(records, query.Sort == SortPostedAtDesc)
		}
	}
	if err != nil {
		writePipelineError(w, r, h.Logger, err)
		return
	}
	if records == nil {
		records = []models.JobRecord{}
	}

	WriteJSON(w, http.StatusOK, JobsResponse{
		Meta: JobsMeta{
			Source:    h.Source.SourceURL(),
			Page:      query.Params.EffectivePage(),
			HasNext:   meta.HasNext,
			NextPage:  meta.NextPage,
			TotalText: meta.TotalText,
		},
		Data: records,
	})
}

// Head answers HEAD /jobs without touching the source.
func (h JobsHandler) Head(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusNotFound, codeNotFound, fmt.Sprintf("Job not found: %s", id))
		return
	}

	record, err := h.Source.JobByID(r.Context(), id)
	if err != nil {
		writePipelineError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

// ParseJobsQuery validates the GET /jobs query. Filters are carried through as given.
func ParseJobsQuery(values url.Values) (JobsQuery, error) {
	query := JobsQuery{
		Params: models.ListParams{
			Page:     1,
			Category: strings.TrimSpace(values.Get("category")),
			Type:     strings.TrimSpace(values.Get("type")),
			Country:  strings.TrimSpace(values.Get("country")),
		},
		Include: IncludeDetails,
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return JobsQuery{}, fmt.Errorf("page must be an integer >= 1, got %q", raw)
		}
		query.Params.Page = page
	}

	if raw := strings.TrimSpace(values.Get("include")); raw != "" {
		if raw != IncludeDetails && raw != IncludeList {
			return JobsQuery{}, fmt.Errorf("include must be %q or %q, got %q", IncludeDetails, IncludeList, raw)
		}
		query.Include = raw
	}

	if raw := strings.TrimSpace(values.Get("sort")); raw != "" {
		if raw != SortPostedAt && raw != SortPostedAtDesc {
			return JobsQuery{}, fmt.Errorf("sort must be %q or %q, got %q", SortPostedAt, SortPostedAtDesc, raw)
		}
		query.Sort = raw
	}

	if raw := strings.TrimSpace(values.Get("remote")); raw != "" {
		remote, err := parseBool(raw)
		if err != nil {
			return JobsQuery{}, err
		}
		query.Params.Remote = &remote
	}
	return query, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("remote must be a boolean, got %q", raw)
}
