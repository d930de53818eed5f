package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPFetcher_FetchDocument(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		retries    int
		wantError  bool
		wantHits   int32
	}{
		{
			name:       "successful fetch",
			statusCode: http.StatusOK,
			body:       "<html><body>ok</body></html>",
			retries:    2,
			wantHits:   1,
		},
		{
			name:       "client error is not retried",
			statusCode: http.StatusNotFound,
			retries:    2,
			wantError:  true,
			wantHits:   1,
		},
		{
			name:       "server error is retried",
			statusCode: http.StatusBadGateway,
			retries:    1,
			wantError:  true,
			wantHits:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				if r.URL.Path != "/Modules/WB/League.aspx" || r.URL.Query().Get("LeagueID") != "1" {
					t.Errorf("unexpected request %s", r.URL.String())
				}
				if r.Header.Get("User-Agent") == "" || r.Header.Get("Accept-Language") == "" {
					t.Error("expected browser-like headers")
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := NewHTTPFetcher(server.URL, WithRetries(tt.retries), WithTimeout(5*time.Second))
			got, err := f.FetchDocument(context.Background(), "/Modules/WB/League.aspx?LeagueID=1")

			if (err != nil) != tt.wantError {
				t.Fatalf("FetchDocument error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && got != tt.body {
				t.Errorf("FetchDocument = %q, want %q", got, tt.body)
			}
			if n := atomic.LoadInt32(&hits); n != tt.wantHits {
				t.Errorf("server hit %d times, want %d", n, tt.wantHits)
			}
		})
	}
}

func TestWithTimeout_KeepsSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	f := NewHTTPFetcher("https://example.org", WithHTTPClient(shared), WithTimeout(5*time.Second))

	if shared.Timeout != time.Minute {
		t.Errorf("shared client timeout changed to %s", shared.Timeout)
	}
	if f.client == shared {
		t.Fatal("expected the fetcher to use a copy of the shared client")
	}
	if f.client.Timeout != 5*time.Second {
		t.Errorf("fetcher timeout = %s, want 5s", f.client.Timeout)
	}

	plain := NewHTTPFetcher("https://example.org", WithHTTPClient(shared))
	if plain.client != shared {
		t.Error("without WithTimeout the given client should be used as is")
	}
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.URL, WithRetries(0)).FetchDocument(context.Background(), "Index.aspx")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected a StatusError, got %v", err)
	}
	if se.Code != http.StatusForbidden || se.Path != "/Index.aspx" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestHTTPFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHTTPFetcher(server.URL, WithRetries(5)).FetchDocument(ctx, "/x"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

// stubFetcher serves fixed pages by path
type stubFetcher struct {
	pages map[string]string
	paths []string
}

func (s *stubFetcher) FetchDocument(_ context.Context, path string) (string, error) {
	s.paths = append(s.paths, path)
	page, ok := s.pages[path]
	if !ok {
		return "", fmt.Errorf("fetching %s: %w", path, &StatusError{Path: path, Code: http.StatusNotFound})
	}
	return page, nil
}

func TestScraper(t *testing.T) {
	stub := &stubFetcher{pages: map[string]string{
		"/Modules/WB/Index.aspx?Season=2025":             overviewPage,
		"/Modules/WB/League.aspx?Season=2025&LeagueID=1": leaguePageNew,
		"/Modules/WB/Game.aspx?Season=2025&GameID=101":   gamePage,
	}}
	s := New(stub, NewParser("", ""))
	ctx := context.Background()

	groups, err := s.FetchLeagueGroups(ctx, 2025)
	if err != nil {
		t.Fatalf("FetchLeagueGroups: %v", err)
	}
	link := groups[0].Entries[0].Link

	l, err := s.FetchLeague(ctx, link)
	if err != nil {
		t.Fatalf("FetchLeague(%q): %v", link, err)
	}
	if l.Link != link || len(l.Games) != 3 {
		t.Errorf("league = %q with %d games", l.Link, len(l.Games))
	}

	d, err := s.FetchGameDetail(ctx, l.Games[0].Link)
	if err != nil {
		t.Fatalf("FetchGameDetail: %v", err)
	}
	if d.GameID != "4711" {
		t.Errorf("GameID = %q", d.GameID)
	}

	if _, err := s.FetchGameDetail(ctx, l.Games[1].Link); err == nil {
		t.Error("expected an error for a page the fetcher does not know")
	}
}

func TestScraper_OverviewPath(t *testing.T) {
	s := New(&stubFetcher{}, NewParser("", ""))
	if got := s.OverviewPath(0); got != "/Modules/WB/Index.aspx" {
		t.Errorf("OverviewPath(0) = %q", got)
	}
	if got := s.OverviewPath(2024); got != "/Modules/WB/Index.aspx?Season=2024" {
		t.Errorf("OverviewPath(2024) = %q", got)
	}
}
