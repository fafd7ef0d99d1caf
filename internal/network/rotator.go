package network

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

// Rotator hands out proxies round-robin, skipping ones the source recently refused.
type Rotator struct {
	proxies     []*url.URL
	banDuration time.Duration
	bannedUntil map[string]time.Time
	index       int
	now         func() time.Time
	mu          sync.Mutex
}

func NewRotator(raw []string, banDuration time.Duration) (*Rotator, error) {
	rotator := &Rotator{
		banDuration: banDuration,
		bannedUntil: map[string]time.Time{},
		now:         time.Now,
	}

	for _, proxy := range raw {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("proxy must be an absolute URL: " + proxy)
		}
		rotator.proxies = append(rotator.proxies, u)
	}

	return rotator, nil
}

func (r *Rotator) Len() int {
	return len(r.proxies)
}

// Proxies returns every configured proxy URL in rotation order.
func (r *Rotator) Proxies() []string {
	out := make([]string, 0, len(r.proxies))
	for _, proxy := range r.proxies {
		out = append(out, proxy.String())
	}
	return out
}

func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.proxies) == 0 {
		return nil, ErrNoProxies
	}

	for range r.proxies {
		proxy := r.proxies[r.index]
		r.index = (r.index + 1) % len(r.proxies)
		if !r.isBanned(proxy.String()) {
			return proxy, nil
		}
	}
	return nil, ErrNoProxies
}

// Report bans a proxy for banDuration when the source answered 403 or 429 through it.
func (r *Rotator) Report(proxy string, status int) {
	if proxy == "" {
		return
	}
	if status != http.StatusForbidden && status != http.StatusTooManyRequests {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bannedUntil[proxy] = r.now().Add(r.banDuration)
}

func (r *Rotator) isBanned(proxy string) bool {
	until, ok := r.bannedUntil[proxy]
	if !ok {
		return false
	}
	if r.now().After(until) {
		delete(r.bannedUntil, proxy)
		return false
	}
	return true
}
