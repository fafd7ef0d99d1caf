package scraper

import (
	"time"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/MrJJimenez/awwjobs/internal/network"
	"github.com/rs/zerolog"
)

const SiteAwwwards = "awwwards"

const proxyBanDuration = 10 * time.Minute

// Build wires a rotator, an HTTP client and a shared fetcher into an Awwwards source.
func Build(cfg models.ScraperConfig, logger zerolog.Logger) (*Awwwards, error) {
	var rotator *network.Rotator
	if len(cfg.Proxies) > 0 {
		r, err := network.NewRotator(cfg.Proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
		rotator = r
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = network.DefaultTimeout
	}
	client, err := network.NewClient(rotator, cfg.UserAgent, int(timeout.Seconds())+1)
	if err != nil {
		return nil, err
	}

	fetcher := network.NewFetcher(client, network.FetcherOptions{
		Concurrency: cfg.Concurrency,
		Timeout:     timeout,
		UserAgent:   cfg.UserAgent,
		RateLimit:   cfg.RateLimit,
		Burst:       cfg.Burst,
		Logger:      logger,
	})
	return NewAwwwards(fetcher, cfg.SourceURL, logger), nil
}
