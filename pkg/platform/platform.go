package platform

import (
	"context"
	"time"
)

// Platform identifies one of the six collected platforms.
type Platform string

const (
	YouTube Platform = "youtube"
	Reddit  Platform = "reddit"
	Google  Platform = "google"
	Twitter Platform = "twitter"
	Spotify Platform = "spotify"
	News    Platform = "news"
)

// All returns every platform in the fixed collection order. The
// quota-limited search-trends API goes last.
func All() []Platform {
	return []Platform{Spotify, Reddit, YouTube, News, Twitter, Google}
}

// Parse maps a platform name to its Platform. ok is false for anything
// outside the fixed set.
func Parse(name string) (Platform, bool) {
	switch Platform(name) {
	case YouTube, Reddit, Google, Twitter, Spotify, News:
		return Platform(name), true
	}
	return "", false
}

// TrendRecord is the normalized unit shared by all platforms. Field names
// are the on-disk contract consumed by the serving layer; platform-specific
// fields are omitted when empty.
type TrendRecord struct {
	Rank  int    `json:"rank"`
	Title string `json:"title,omitempty"`
	Name  string `json:"name,omitempty"`
	URL   string `json:"url"`
	Tag   string `json:"tag,omitempty"`

	// youtube
	Channel string `json:"channel,omitempty"`
	Views   string `json:"views,omitempty"`
	Likes   string `json:"likes,omitempty"`

	// reddit
	Subreddit   string `json:"subreddit,omitempty"`
	Score       string `json:"score,omitempty"`
	Comments    string `json:"comments,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Author      string `json:"author,omitempty"`
	Created     string `json:"created,omitempty"`

	// spotify
	Artists    string `json:"artists,omitempty"`
	Album      string `json:"album,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Popularity int    `json:"popularity,omitempty"`

	// twitter
	Volume string `json:"volume,omitempty"`

	// google
	SearchURL string `json:"search_url,omitempty"`

	// news
	Source  string `json:"source,omitempty"`
	PubDate string `json:"pub_date,omitempty"`
}

// DisplayName returns the record's display string, which lives in either
// the title or the name field depending on the platform.
func (r TrendRecord) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Snapshot is one platform's current trend list. It fully replaces the
// previous snapshot on every successful collection.
type Snapshot struct {
	Trends      []TrendRecord `json:"trends"`
	LastUpdated string        `json:"last_updated"`
	Source      string        `json:"source,omitempty"`
}

// Adapter fetches and normalizes one platform's trends. The returned
// snapshot carries the ranked trend list (and provenance, when the
// platform has multiple backing APIs) but no timestamp; the collector
// stamps last_updated at write time. A nil error implies at least one
// record.
type Adapter interface {
	Platform() Platform
	Collect(ctx context.Context) (*Snapshot, error)
}

// RawSink receives best-effort diagnostic payloads (raw scraped pages,
// raw API responses). Implementations must not fail the collection.
type RawSink interface {
	WriteRaw(name string, data []byte) error
}

// ist is a fixed +05:30 offset so timestamps don't depend on host tzdata.
var ist = time.FixedZone("IST", 5*3600+30*60)

// Timestamp formats t in the snapshot timestamp format, e.g.
// "2025-04-01 18:30:00 IST".
func Timestamp(t time.Time) string {
	return t.In(ist).Format("2006-01-02 15:04:05") + " IST"
}
