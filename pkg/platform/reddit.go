package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"

// RedditAdapter collects the r/popular front page (public JSON feed,
// no credentials).
type RedditAdapter struct {
	client  *http.Client
	feedURL string
}

// NewReddit creates the forum adapter. feedURL defaults to r/popular.
func NewReddit(feedURL string) *RedditAdapter {
	if feedURL == "" {
		feedURL = "https://www.reddit.com/r/popular.json"
	}
	return &RedditAdapter{
		client:  &http.Client{Timeout: 15 * time.Second},
		feedURL: feedURL,
	}
}

func (r *RedditAdapter) Platform() Platform { return Reddit }

func (r *RedditAdapter) Collect(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create reddit request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch r/popular: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode r/popular: %w", err)
	}

	var trends []TrendRecord
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" || post.Permalink == "" {
			continue
		}

		thumbnail := post.Thumbnail
		if !strings.HasPrefix(thumbnail, "http") {
			thumbnail = ""
		}

		author := post.Author
		if author == "" {
			author = "unknown"
		}

		trends = append(trends, TrendRecord{
			Rank:        len(trends) + 1,
			Title:       post.Title,
			URL:         "https://reddit.com" + post.Permalink,
			Subreddit:   post.Subreddit,
			Score:       commafy(post.Score),
			Comments:    commafy(post.NumComments),
			Description: truncate(post.Selftext, 300),
			Thumbnail:   thumbnail,
			Author:      author,
			Created:     time.Unix(int64(post.CreatedUTC), 0).UTC().Format("2006-01-02 15:04:05"),
		})
	}

	if len(trends) == 0 {
		return nil, fmt.Errorf("r/popular returned no posts")
	}
	return &Snapshot{Trends: trends}, nil
}

// commafy renders n with thousands separators ("9999" -> "9,999").
func commafy(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Selftext    string  `json:"selftext"`
	Thumbnail   string  `json:"thumbnail"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
}
