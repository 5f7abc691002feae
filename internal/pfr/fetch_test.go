package pfr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchCombinePage_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/draft/2004-combine.htm" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		switch calls {
		case 1:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte("<table></table>"))
		}
	}))
	defer srv.Close()

	f := NewFetcher(
		WithBaseURL(srv.URL+"/"),
		WithUserAgent("test-agent"),
		WithRetry(4, time.Millisecond, 5*time.Millisecond, time.Millisecond),
	)
	html, err := f.FetchCombinePage(context.Background(), 2004)
	if err != nil {
		t.Fatalf("FetchCombinePage error: %v", err)
	}
	if html != "<table></table>" {
		t.Fatalf("html = %q", html)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestFetchCombinePage_NonRetryable(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(WithBaseURL(srv.URL), WithRetry(4, time.Millisecond, time.Millisecond, time.Millisecond))
	_, err := f.FetchCombinePage(context.Background(), 1999)
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("err = %v, want status 404", err)
	}
	if !strings.Contains(err.Error(), "fetch combine 1999") {
		t.Fatalf("err = %v, want year context", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := map[string]time.Duration{
		"":    0,
		"3":   3 * time.Second,
		"abc": 0,
	}
	for in, want := range cases {
		if got := parseRetryAfter(in); got != want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCombineURL(t *testing.T) {
	f := NewFetcher()
	want := "https://www.pro-football-reference.com/draft/2010-combine.htm"
	if got := f.CombineURL(2010); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
