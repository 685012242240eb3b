// Package scrape extracts recent videos from a channel page html, used when yt-dlp is not available.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/pkg/errors"

	"github.com/umputun/yt-recent/app/youtube/channel"
)

// defaults for Scraper
const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxRedirects = 5
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117 Safari/537.36"

	maxBodySize = 8 * 1024 * 1024
)

// Scraper loads channel's videos page and parses the embedded initial data
type Scraper struct {
	Client       *http.Client
	UserAgent    string
	Timeout      time.Duration // per request
	MaxRedirects int
}

// Video is a partial video record parsed from the page. Duration and Views are nil if not shown.
type Video struct {
	ID       string
	Title    string
	Duration *int
	Views    *int64
}

// HTTPError returned for non-2xx responses and failed requests
type HTTPError struct {
	URL    string
	Status int // 0 if no response
	Err    error
}

func (e *HTTPError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("HTTP %d for %s", e.Status, e.URL)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// New makes Scraper with defaults. Redirects are followed by the scraper itself, not by the client.
func New(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{}
	}
	return &Scraper{Client: client, UserAgent: DefaultUserAgent, Timeout: DefaultTimeout, MaxRedirects: DefaultMaxRedirects}
}

// Videos returns up to limit videos from the channel page. Never fails, any error results in empty list.
func (s *Scraper) Videos(ctx context.Context, identifier string, limit int) (res []Video) {
	pageURL := channel.VideosURL(identifier)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] scraping %s panicked: %v", pageURL, r)
			res = []Video{}
		}
	}()

	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		log.Printf("[DEBUG] can't scrape %s, %v", pageURL, err)
		return []Video{}
	}
	res, err = parsePage(body, limit)
	if err != nil {
		log.Printf("[DEBUG] can't parse page %s, %v", pageURL, err)
		return []Video{}
	}
	log.Printf("[DEBUG] scraped %d videos from %s", len(res), pageURL)
	return res
}

// fetch gets page body, following redirects manually
func (s *Scraper) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	maxRedirects := s.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	current := pageURL
	for hop := 0; ; hop++ {
		body, location, err := s.get(ctx, current)
		if err != nil {
			return nil, err
		}
		if location == "" {
			return body, nil
		}
		if hop >= maxRedirects {
			return nil, errors.Errorf("too many redirects for %s", pageURL)
		}
		next, err := resolve(current, location)
		if err != nil {
			return nil, errors.Wrapf(err, "bad redirect location %q from %s", location, current)
		}
		log.Printf("[DEBUG] redirect %s -> %s", current, next)
		current = next
	}
}

// get makes a single request. Returns redirect location for 3xx responses.
func (s *Scraper) get(ctx context.Context, reqURL string) (body []byte, location string, err error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to create request for %s", reqURL)
	}
	ua := s.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	client := s.client()
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &HTTPError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		if loc := resp.Header.Get("Location"); loc != "" {
			return nil, loc, nil
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &HTTPError{URL: reqURL, Status: resp.StatusCode}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, "", &HTTPError{URL: reqURL, Status: resp.StatusCode, Err: err}
	}
	return body, "", nil
}

// client returns a copy of http client which doesn't follow redirects
func (s *Scraper) client() *http.Client {
	res := http.Client{}
	if s.Client != nil {
		res = *s.Client
	}
	res.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	return &res
}

// resolve makes absolute url from location, relative to the current one
func resolve(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	loc, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(loc).String(), nil
}
