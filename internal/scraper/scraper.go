package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/wbliga/wb-liga/internal/league"
	"github.com/wbliga/wb-liga/internal/logger"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	DefaultTimeout   = 30 * time.Second
	DefaultRetries   = 3
)

// Fetcher retrieves the text of a server-relative path ("/Modules/WB/League.aspx?...")
type Fetcher interface {
	FetchDocument(ctx context.Context, path string) (string, error)
}

// StatusError is returned for non-200 responses
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.Code, e.Path)
}

// HTTPFetcher fetches documents over HTTP, retrying transient failures
// with exponential backoff
type HTTPFetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	retries   uint64
}

// FetcherOption configures an HTTPFetcher
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRetries sets how often a failed request is retried
func WithRetries(n int) FetcherOption {
	return func(f *HTTPFetcher) {
		if n >= 0 {
			f.retries = uint64(n)
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed through
// WithHTTPClient is copied rather than modified.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			c := *f.client
			c.Timeout = d
			f.client = &c
		}
	}
}

// NewHTTPFetcher creates a fetcher sending requests to baseURL, which is
// either the source origin or a proxy in front of it
func NewHTTPFetcher(baseURL string, opts ...FetcherOption) *HTTPFetcher {
	if baseURL == "" {
		baseURL = DefaultOrigin
	}
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		retries:   DefaultRetries,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchDocument implements Fetcher
func (f *HTTPFetcher) FetchDocument(ctx context.Context, path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	start := time.Now()
	defer func() { logger.RecordTiming("scraper.fetch", time.Since(start)) }()

	var body string
	attempt := 0
	operation := func() error {
		attempt++
		text, err := f.fetchOnce(ctx, path)
		if err != nil {
			var se *StatusError
			// client errors will not go away on retry
			if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
				return backoff.Permanent(err)
			}
			logger.Debug("Fetch attempt failed", logger.Fields{
				"path":    path,
				"attempt": attempt,
				"error":   err.Error(),
			})
			return err
		}
		body = text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.retries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		logger.IncrCounter("scraper.fetch_errors")
		return "", fmt.Errorf("fetching %s: %w", path, err)
	}

	logger.IncrCounter("scraper.fetches")
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")
	req.Header.Set("Referer", DefaultOrigin+"/")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Path: path, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(data), nil
}

// Scraper combines a Fetcher with a Parser
type Scraper struct {
	fetcher Fetcher
	parser  Parser
}

// New creates a Scraper
func New(fetcher Fetcher, parser Parser) *Scraper {
	return &Scraper{fetcher: fetcher, parser: parser}
}

// Parser returns the parser used for extraction
func (s *Scraper) Parser() Parser {
	return s.parser
}

// OverviewPath is the path of the league overview for a season; season <= 0 means current
func (s *Scraper) OverviewPath(season int) string {
	path := s.parser.ModulePath() + "Index.aspx"
	if season > 0 {
		path += "?Season=" + strconv.Itoa(season)
	}
	return path
}

// FetchLeagueGroups fetches and parses the league overview
func (s *Scraper) FetchLeagueGroups(ctx context.Context, season int) ([]league.LeagueGroup, error) {
	html, err := s.fetcher.FetchDocument(ctx, s.OverviewPath(season))
	if err != nil {
		return nil, err
	}
	groups := s.parser.ParseLeagueGroups(html)
	logger.Debug("Parsed league overview", logger.Fields{"groups": len(groups)})
	return groups, nil
}

// FetchLeague fetches and parses a league page given its navigation link
func (s *Scraper) FetchLeague(ctx context.Context, link string) (*league.League, error) {
	html, err := s.fetcher.FetchDocument(ctx, s.parser.ResolvePath(link))
	if err != nil {
		return nil, err
	}
	l := s.parser.ParseLeague(html)
	l.Link = link

	logger.IncrCounter("scraper.leagues")
	logger.Debug("Parsed league", logger.Fields{
		"link":      link,
		"games":     len(l.Games),
		"standings": len(l.Standings),
		"scorers":   len(l.Scorers),
	})
	return l, nil
}

// FetchGameDetail fetches and parses a game page given its navigation link
func (s *Scraper) FetchGameDetail(ctx context.Context, link string) (*league.GameDetail, error) {
	html, err := s.fetcher.FetchDocument(ctx, s.parser.ResolvePath(link))
	if err != nil {
		return nil, err
	}
	d := s.parser.ParseGameDetail(html)

	logger.IncrCounter("scraper.games")
	logger.Debug("Parsed game detail", logger.Fields{
		"link":   link,
		"events": len(d.Events),
	})
	return d, nil
}
