package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	DefaultConcurrency = 5
	DefaultTimeout     = 20 * time.Second
)

// FetcherOptions configures a Fetcher. Zero values fall back to the defaults.
type FetcherOptions struct {
	Concurrency int
	Timeout     time.Duration
	UserAgent   string
	Retry       RetryPolicy
	RateLimit   float64
	Burst       int
	Logger      zerolog.Logger
}

// Fetcher is the only place the pipeline touches the network. All fetches issued
// through one Fetcher share a single pool of concurrency permits.
type Fetcher struct {
	client    Doer
	permits   *semaphore.Weighted
	retry     RetryPolicy
	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

func NewFetcher(client Doer, opts FetcherOptions) *Fetcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = DefaultRetryPolicy()
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Fetcher{
		client:    client,
		permits:   semaphore.NewWeighted(int64(opts.Concurrency)),
		retry:     opts.Retry,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
		limiter:   limiter,
		logger:    opts.Logger,
	}
}

// FetchText GETs target and returns the body. Transport errors, timeouts and
// non-2xx responses are retried; once attempts run out a *NetworkError is returned.
func (f *Fetcher) FetchText(ctx context.Context, target string) (string, error) {
	var body string
	attempts, err := f.retry.Do(ctx, func(_ int) error {
		text, err := f.attempt(ctx, target)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Permanent(ctxErr)
			}
			return err
		}
		body = text
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		f.logger.Debug().
			Str("url", target).
			Int("attempt", attempt).
			Dur("wait", wait).
			Err(err).
			Msg("fetch failed, retrying")
	})
	if err != nil {
		return "", &NetworkError{URL: target, Attempts: attempts, Err: err}
	}
	return body, nil
}

func (f *Fetcher) attempt(ctx context.Context, target string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	if err := f.permits.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer f.permits.Release(1)

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(reqCtx, fhttp.MethodGet, target, nil)
	if err != nil {
		return "", Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("read body: %w", reqCtx.Err())
		}
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}
