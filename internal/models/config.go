package models

import "time"

// ScraperConfig contains runtime options for the fetcher and the pipeline.
type ScraperConfig struct {
	SourceURL   string
	Timeout     time.Duration
	Concurrency int
	UserAgent   string
	Proxies     []string
	RateLimit   float64
	Burst       int
}
