package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is the browser identity sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const requestTimeout = 30 * time.Second

// FetchError reports a failed page retrieval, carrying the HTTP status
// when one was received.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves search-results pages through Colly, one request at a
// time. The shared rate limiter is the politeness mechanism protecting
// the marketplace: it enforces the inter-request delay no matter how the
// pipeline iterates. Failed pages are not retried; the pipeline skips
// them.
type Fetcher struct {
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// NewFetcher builds a fetcher pausing delay between successive requests.
func NewFetcher(userAgent string, delay time.Duration) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Fetcher{
		userAgent: userAgent,
		timeout:   requestTimeout,
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Fetch performs a single GET and returns the page body on a 2xx
// response. Any network error, timeout or error status is wrapped in a
// FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c := f.newCollector()

	var body []byte
	status := 0
	var reqErr error
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	collyCtx := colly.NewContext()
	collyCtx.Put("ctx", ctx)

	if err := c.Request(http.MethodGet, target, nil, collyCtx, nil); err != nil {
		return nil, &FetchError{Status: status, Err: err}
	}
	if reqErr != nil {
		return nil, &FetchError{Status: status, Err: reqErr}
	}
	if status >= 400 {
		return nil, &FetchError{Status: status, Err: fmt.Errorf("status %d", status)}
	}
	return body, nil
}

func (f *Fetcher) newCollector() *colly.Collector {
	c := colly.NewCollector(colly.UserAgent(f.userAgent))
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		ctx := context.Background()
		if v := r.Ctx.GetAny("ctx"); v != nil {
			if reqCtx, ok := v.(context.Context); ok {
				ctx = reqCtx
			}
		}
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	return c
}

func normalizeURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return u.String(), nil
}
