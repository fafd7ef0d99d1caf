package network

import (
	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// DefaultUserAgent identifies the scraper to the job board.
const DefaultUserAgent = "Mozilla/5.0 (compatible; AwwwardsJobsBot/0.1; +https://example.com/bot)"

// Doer sends a single HTTP request.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Client sends requests directly, or through one of the rotator's proxies. Each
// proxy owns its own tls-client instance, so concurrent requests never share or
// mutate transport state.
type Client struct {
	direct    Doer
	byProxy   map[string]Doer
	rotator   *Rotator
	userAgent string
}

func NewClient(rotator *Rotator, userAgent string, timeoutSeconds int) (*Client, error) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	var (
		direct  Doer
		byProxy map[string]Doer
	)
	if rotator != nil && rotator.Len() > 0 {
		byProxy = make(map[string]Doer, rotator.Len())
		for _, proxy := range rotator.Proxies() {
			client, err := newHTTPClient(timeoutSeconds, tls_client.WithProxyUrl(proxy))
			if err != nil {
				return nil, err
			}
			byProxy[proxy] = client
		}
	} else {
		client, err := newHTTPClient(timeoutSeconds)
		if err != nil {
			return nil, err
		}
		direct = client
	}

	return newClient(rotator, userAgent, direct, byProxy), nil
}

func newHTTPClient(timeoutSeconds int, extra ...tls_client.HttpClientOption) (tls_client.HttpClient, error) {
	jar, _ := fhttpcookiejar.New(nil)
	options := append([]tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithCookieJar(jar),
	}, extra...)
	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

func newClient(rotator *Rotator, userAgent string, direct Doer, byProxy map[string]Doer) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		direct:    direct,
		byProxy:   byProxy,
		rotator:   rotator,
		userAgent: userAgent,
	}
}

// Do sends req through the next usable proxy and reports the response status
// against that same proxy. With every proxy banned it returns ErrNoProxies.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	proxy, doer, err := c.pick()
	if err != nil {
		return nil, err
	}
	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != "" {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) pick() (string, Doer, error) {
	if len(c.byProxy) == 0 {
		return "", c.direct, nil
	}
	next, err := c.rotator.Next()
	if err != nil {
		return "", nil, err
	}
	proxy := next.String()
	doer, ok := c.byProxy[proxy]
	if !ok {
		return "", nil, ErrNoProxies
	}
	return proxy, doer, nil
}
