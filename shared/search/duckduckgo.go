package search

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yt-summarizer/internal/models"
	"yt-summarizer/shared/config"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// DuckDuckGo queries the DuckDuckGo HTML lite endpoint. It needs no API key.
type DuckDuckGo struct {
	endpoint   string
	region     string
	maxResults int
	client     *http.Client
}

func NewDuckDuckGo(cfg *config.SearchConfig) *DuckDuckGo {
	return &DuckDuckGo{
		endpoint:   cfg.Endpoint,
		region:     cfg.Region,
		maxResults: cfg.MaxResults,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// Search returns at most maxResults web results for query.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	form := url.Values{
		"q":  {query},
		"kl": {d.region},
		"df": {""},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", "https://html.duckduckgo.com/")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query duckduckgo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	results := parseResults(doc, d.maxResults)
	log.Printf("DuckDuckGo search %q returned %d results", query, len(results))
	return results, nil
}

func parseResults(doc *goquery.Document, limit int) []models.SearchResult {
	var results []models.SearchResult

	doc.Find(".result, .web-result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit > 0 && len(results) >= limit {
			return false
		}

		// Ads carry the same markup.
		if s.HasClass("result--ad") {
			return true
		}

		link := s.Find("a.result__a, .result__title a").First()
		title := strings.TrimSpace(link.Text())
		href, exists := link.Attr("href")
		if !exists || title == "" {
			return true
		}

		href = unwrapURL(href)
		if href == "" {
			return true
		}

		results = append(results, models.SearchResult{
			Title:   title,
			URL:     href,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
		return true
	})

	return results
}

// unwrapURL extracts the target of DuckDuckGo's redirect links, e.g.
// //duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com&rut=...
func unwrapURL(href string) string {
	if strings.Contains(href, "duckduckgo.com/l/") || strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if target := u.Query().Get("uddg"); target != "" {
				return target
			}
		}
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}
