package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// YouTubeAdapter collects the most-popular chart for one region. The Data
// API is the primary source; when it is unavailable (no key, quota, outage)
// the RapidAPI trending endpoint serves as a secondary, re-ranked by its
// suffixed view-count strings.
type YouTubeAdapter struct {
	client      *http.Client
	apiKey      string
	rapidAPIKey string
	region      string
	maxResults  int

	apiURL   string
	rapidURL string
}

// NewYouTube creates the video adapter. Either key may be empty; with
// both missing Collect degrades straight to the caller's fallback.
func NewYouTube(apiKey, rapidAPIKey, region string, maxResults int) *YouTubeAdapter {
	if region == "" {
		region = "IN"
	}
	if maxResults <= 0 {
		maxResults = 30
	}
	return &YouTubeAdapter{
		client:      &http.Client{Timeout: 15 * time.Second},
		apiKey:      apiKey,
		rapidAPIKey: rapidAPIKey,
		region:      region,
		maxResults:  maxResults,
		apiURL:      "https://www.googleapis.com/youtube/v3/videos",
		rapidURL:    "https://youtube-v41.p.rapidapi.com/trending",
	}
}

func (y *YouTubeAdapter) Platform() Platform { return YouTube }

func (y *YouTubeAdapter) Collect(ctx context.Context) (*Snapshot, error) {
	if y.apiKey != "" {
		trends, err := y.collectFromAPI(ctx)
		if err == nil {
			return &Snapshot{Trends: trends}, nil
		}
	}

	if y.rapidAPIKey == "" {
		return nil, fmt.Errorf("youtube: no usable API key")
	}

	trends, err := y.collectFromRapidAPI(ctx)
	if err != nil {
		return nil, fmt.Errorf("youtube fallback: %w", err)
	}
	return &Snapshot{Trends: trends}, nil
}

func (y *YouTubeAdapter) collectFromAPI(ctx context.Context) ([]TrendRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", y.region)
	params.Set("maxResults", strconv.Itoa(y.maxResults))
	params.Set("hl", "hi")
	params.Set("key", y.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create youtube request: %w", err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch youtube chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube chart status %d", resp.StatusCode)
	}

	var result ytChartResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode youtube chart: %w", err)
	}

	var trends []TrendRecord
	for _, video := range result.Items {
		if video.Snippet.Title == "" || video.ID == "" {
			continue
		}
		trends = append(trends, TrendRecord{
			Rank:    len(trends) + 1,
			Title:   video.Snippet.Title,
			Channel: video.Snippet.ChannelTitle,
			Views:   FormatCount(video.Statistics.ViewCount),
			Likes:   FormatCount(video.Statistics.LikeCount),
			URL:     "https://youtube.com/watch?v=" + video.ID,
			Tag:     "trending",
		})
	}

	if len(trends) == 0 {
		return nil, fmt.Errorf("youtube chart returned no videos")
	}
	return trends, nil
}

func (y *YouTubeAdapter) collectFromRapidAPI(ctx context.Context) ([]TrendRecord, error) {
	payload, _ := json.Marshal(map[string]string{"country": y.region})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.rapidURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create rapidapi request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-host", "youtube-v41.p.rapidapi.com")
	req.Header.Set("x-rapidapi-key", y.rapidAPIKey)

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rapidapi trending: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rapidapi trending status %d", resp.StatusCode)
	}

	var videos []rapidAPIVideo
	if err := json.NewDecoder(resp.Body).Decode(&videos); err != nil {
		return nil, fmt.Errorf("decode rapidapi trending: %w", err)
	}

	// The secondary API returns no chart order, so rank by parsed views.
	sort.SliceStable(videos, func(i, j int) bool {
		return ParseViews(videos[i].Views) > ParseViews(videos[j].Views)
	})

	var trends []TrendRecord
	for _, video := range videos {
		if video.Title == "" {
			continue
		}
		link := video.Link
		if link == "" {
			link = "https://youtube.com/watch?v=" + video.VideoID
		}
		channel := video.Channel
		if channel == "" {
			channel = "Unknown Channel"
		}
		views := video.Views
		if views == "" {
			views = "N/A"
		}
		trends = append(trends, TrendRecord{
			Rank:    len(trends) + 1,
			Title:   video.Title,
			Channel: channel,
			Views:   views,
			URL:     link,
			Tag:     "trending",
		})
	}

	if len(trends) == 0 {
		return nil, fmt.Errorf("rapidapi trending returned no videos")
	}
	return trends, nil
}

type ytChartResult struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount int64 `json:"viewCount,string"`
			LikeCount int64 `json:"likeCount,string"`
		} `json:"statistics"`
	} `json:"items"`
}

type rapidAPIVideo struct {
	Title   string `json:"title"`
	Channel string `json:"channel"`
	Views   string `json:"number_of_views"`
	Link    string `json:"link"`
	VideoID string `json:"video_id"`
}
