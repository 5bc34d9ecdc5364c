package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed/rss"
)

// NewsAdapter collects headlines from the Google News RSS feed. Items
// that fail to parse are skipped individually; only a fully empty batch
// fails the run. Uses gofeed's RSS parser directly because the universal
// model drops the per-item <source> element.
type NewsAdapter struct {
	client  *http.Client
	parser  *rss.Parser
	feedURL string
}

// NewNews creates the headline adapter. feedURL defaults to Google News.
func NewNews(feedURL string) *NewsAdapter {
	if feedURL == "" {
		feedURL = "https://news.google.com/rss"
	}
	return &NewsAdapter{
		client:  &http.Client{Timeout: 15 * time.Second},
		parser:  &rss.Parser{},
		feedURL: feedURL,
	}
}

func (n *NewsAdapter) Platform() Platform { return News }

func (n *NewsAdapter) Collect(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create news request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed status %d", resp.StatusCode)
	}

	feed, err := n.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	var trends []TrendRecord
	for _, entry := range feed.Items {
		if entry == nil || entry.Title == "" || entry.Link == "" {
			continue
		}

		source := "Google News"
		if entry.Source != nil && entry.Source.Title != "" {
			source = entry.Source.Title
		}

		trends = append(trends, TrendRecord{
			Rank:    len(trends) + 1,
			Title:   entry.Title,
			URL:     entry.Link,
			Source:  source,
			PubDate: entry.PubDate,
			Tag:     "headline",
		})
	}

	if len(trends) == 0 {
		return nil, fmt.Errorf("news feed returned no items")
	}
	return &Snapshot{Trends: trends}, nil
}
