package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GoogleAdapter collects realtime search trends from the RapidAPI
// realtime trends endpoint. The upstream plan allows roughly 100 calls a
// month, so this adapter is the last in the collection order and has its
// own refresh endpoint on the serving side.
type GoogleAdapter struct {
	client      *http.Client
	rapidAPIKey string
	region      string
	raw         RawSink

	apiURL string
}

// NewGoogle creates the search-trends adapter. raw may be nil.
func NewGoogle(rapidAPIKey, region string, raw RawSink) *GoogleAdapter {
	if region == "" {
		region = "INDIA"
	}
	return &GoogleAdapter{
		client:      &http.Client{Timeout: 15 * time.Second},
		rapidAPIKey: rapidAPIKey,
		region:      region,
		raw:         raw,
		apiURL:      "https://google-realtime-trends-data-api.p.rapidapi.com/trends/",
	}
}

func (g *GoogleAdapter) Platform() Platform { return Google }

func (g *GoogleAdapter) Collect(ctx context.Context) (*Snapshot, error) {
	if g.rapidAPIKey == "" {
		return nil, fmt.Errorf("google trends: RAPID_API_KEY not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+g.region, nil)
	if err != nil {
		return nil, fmt.Errorf("create google trends request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", "google-realtime-trends-data-api.p.rapidapi.com")
	req.Header.Set("x-rapidapi-key", g.rapidAPIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch google trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google trends status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read google trends: %w", err)
	}
	if g.raw != nil {
		_ = g.raw.WriteRaw("google_debug_realtime_api.json", body)
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			KeywordsText []string `json:"keywordsText"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode google trends: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("google trends API reported failure")
	}

	var trends []TrendRecord
	for _, keyword := range result.Data.KeywordsText {
		if keyword == "" {
			continue
		}
		searchURL := "https://google.com/search?q=" + strings.ReplaceAll(keyword, " ", "+")
		trends = append(trends, TrendRecord{
			Rank:      len(trends) + 1,
			Title:     keyword,
			URL:       searchURL,
			SearchURL: searchURL,
			Tag:       "trending",
		})
	}

	if len(trends) == 0 {
		return nil, fmt.Errorf("google trends returned no keywords")
	}
	return &Snapshot{Trends: trends, Source: "rapidapi_realtime"}, nil
}
