package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"yt-summarizer/shared/config"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <h2 class="result__title"><a class="result__a" href="https://ads.example.com">Sponsored</a></h2>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc&amp;rut=abc">The Go Programming Language</a></h2>
  <a class="result__snippet">Documentation for Go.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://pkg.go.dev">  Go Packages </a></h2>
  <a class="result__snippet">Discover packages.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="/relative">Broken</a></h2>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://third.example.com">Third</a></h2>
</div>
</body></html>`

func newTestSearch(t *testing.T, maxResults int, handler http.HandlerFunc) *DuckDuckGo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewDuckDuckGo(&config.SearchConfig{Endpoint: srv.URL, Region: "wt-wt", MaxResults: maxResults})
}

func TestDuckDuckGoSearch(t *testing.T) {
	d := newTestSearch(t, 5, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
			return
		}
		if got := r.PostForm.Get("q"); got != "golang docs" {
			t.Errorf("q = %q, want %q", got, "golang docs")
		}
		if got := r.PostForm.Get("kl"); got != "wt-wt" {
			t.Errorf("kl = %q, want wt-wt", got)
		}
		io.WriteString(w, resultsPage)
	})

	results, err := d.Search(context.Background(), "  golang docs ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d: %+v", len(results), results)
	}
	if results[0].URL != "https://go.dev/doc" {
		t.Errorf("Redirect not unwrapped: %s", results[0].URL)
	}
	if results[0].Snippet != "Documentation for Go." {
		t.Errorf("Snippet = %q", results[0].Snippet)
	}
	if results[1].Title != "Go Packages" {
		t.Errorf("Title not trimmed: %q", results[1].Title)
	}
	if results[2].URL != "https://third.example.com" {
		t.Errorf("Unexpected third result: %+v", results[2])
	}
}

func TestDuckDuckGoSearchLimit(t *testing.T) {
	d := newTestSearch(t, 1, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, resultsPage)
	})

	results, err := d.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestDuckDuckGoSearchErrors(t *testing.T) {
	d := newTestSearch(t, 5, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	if _, err := d.Search(context.Background(), "go"); err == nil {
		t.Error("Expected error for non-200 status")
	}
	if _, err := d.Search(context.Background(), "   "); err == nil {
		t.Error("Expected error for empty query")
	}
}

func TestUnwrapURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa&rut=x", "https://example.com/a"},
		{"https://example.com", "https://example.com"},
		{"/relative/path", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := unwrapURL(tt.input); got != tt.expected {
				t.Errorf("unwrapURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
