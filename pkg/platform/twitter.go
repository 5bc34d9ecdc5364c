package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// TwitterAdapter scrapes the trends24.in aggregator page. The page has no
// formal contract, so extraction runs through a chain of selectors and
// accepts the first that yields anything; trend names that are not pure
// ASCII are dropped and the survivors re-ranked in scrape order.
type TwitterAdapter struct {
	client  *http.Client
	country string
	raw     RawSink

	baseURL string
}

// NewTwitter creates the microblog adapter. raw receives the fetched page
// for selector debugging and may be nil.
func NewTwitter(country string, raw RawSink) *TwitterAdapter {
	if country == "" {
		country = "india"
	}
	return &TwitterAdapter{
		client:  &http.Client{Timeout: 15 * time.Second},
		country: country,
		raw:     raw,
		baseURL: "https://trends24.in",
	}
}

func (t *TwitterAdapter) Platform() Platform { return Twitter }

func (t *TwitterAdapter) Collect(ctx context.Context) (*Snapshot, error) {
	pageURL := fmt.Sprintf("%s/%s/", t.baseURL, t.country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create trends24 request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", t.baseURL+"/")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends24: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends24 status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read trends24: %w", err)
	}
	if t.raw != nil {
		_ = t.raw.WriteRaw("twitter_debug.html", body)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse trends24: %w", err)
	}

	items := findTrendItems(doc)
	if items == nil || items.Length() == 0 {
		return nil, fmt.Errorf("trends24: no trend items matched any selector")
	}

	var trends []TrendRecord
	items.Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" || !IsASCII(name) {
			return
		}
		trends = append(trends, TrendRecord{
			Rank:   len(trends) + 1,
			Name:   name,
			URL:    "https://twitter.com/search?q=" + strings.ReplaceAll(name, "#", "%23"),
			Volume: extractVolume(sel),
			Tag:    "trending",
		})
	})

	if len(trends) == 0 {
		return nil, fmt.Errorf("trends24: no English trends found")
	}
	return &Snapshot{Trends: trends}, nil
}

// findTrendItems walks the selector fallback chain.
func findTrendItems(doc *goquery.Document) *goquery.Selection {
	if card := doc.Find(".trend-card").First(); card.Length() > 0 {
		return card.Find("ol li a")
	}
	if card := doc.Find(".trends-card").First(); card.Length() > 0 {
		return card.Find("ol li a")
	}
	for _, selector := range []string{"ol li a", ".trend-item a", "a[data-trend]"} {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// extractVolume looks for a tweet count next to the trend link.
func extractVolume(link *goquery.Selection) string {
	parent := link.Parent()
	if parent.Length() == 0 {
		return "-"
	}
	for _, selector := range []string{".tweet-count", ".trend-volume", "span.count"} {
		if el := parent.Find(selector).First(); el.Length() > 0 {
			if text := strings.TrimSpace(el.Text()); text != "" {
				return NormalizeVolume(text)
			}
		}
	}
	// No dedicated element; scan the parent text for "<n> tweets".
	if m := tweetVolRe.FindStringSubmatch(parent.Text()); m != nil {
		return NormalizeVolume(m[1])
	}
	return "-"
}

var tweetVolRe = regexp.MustCompile(`(\d[\d,]*\s*[kK]?)\+?\s*tweets`)
