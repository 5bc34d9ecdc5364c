package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// SpotifyAdapter pulls the track list of the first playlist matching a
// fixed, ordered set of search terms. Uses the client-credentials OAuth
// flow; the token is cached until shortly before expiry.
type SpotifyAdapter struct {
	client       *http.Client
	clientID     string
	clientSecret string
	queries      []string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	tokenURL string
	apiURL   string
}

// NewSpotify creates the music adapter. Empty credentials make Collect
// fail before any network I/O.
func NewSpotify(clientID, clientSecret string, queries []string) *SpotifyAdapter {
	if len(queries) == 0 {
		queries = []string{"Bollywood Hits", "Top Hindi Songs", "India Trending Music"}
	}
	return &SpotifyAdapter{
		client:       &http.Client{Timeout: 15 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		queries:      queries,
		tokenURL:     "https://accounts.spotify.com/api/token",
		apiURL:       "https://api.spotify.com/v1",
	}
}

func (s *SpotifyAdapter) Platform() Platform { return Spotify }

func (s *SpotifyAdapter) Collect(ctx context.Context) (*Snapshot, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return nil, fmt.Errorf("spotify: credentials not set")
	}

	if err := s.authenticate(ctx); err != nil {
		return nil, fmt.Errorf("spotify auth: %w", err)
	}

	for _, query := range s.queries {
		playlistID, err := s.findPlaylist(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("spotify search %q: %w", query, err)
		}
		if playlistID == "" {
			continue
		}

		trends, err := s.playlistTracks(ctx, playlistID)
		if err != nil {
			return nil, fmt.Errorf("spotify playlist %s: %w", playlistID, err)
		}
		if len(trends) > 0 {
			return &Snapshot{Trends: trends}, nil
		}
	}

	return nil, fmt.Errorf("spotify: no query returned a playlist")
}

func (s *SpotifyAdapter) authenticate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return nil
	}

	data := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	s.token = tokenResp.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	return nil
}

// findPlaylist returns the ID of the first non-null playlist matching
// query, or "" when the search comes back empty.
func (s *SpotifyAdapter) findPlaylist(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "playlist")
	params.Set("limit", "3")

	var result struct {
		Playlists struct {
			Items []*struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"playlists"`
	}
	if err := s.getJSON(ctx, s.apiURL+"/search?"+params.Encode(), &result); err != nil {
		return "", err
	}

	for _, p := range result.Playlists.Items {
		// The search API pads results with JSON nulls.
		if p != nil && p.ID != "" {
			return p.ID, nil
		}
	}
	return "", nil
}

func (s *SpotifyAdapter) playlistTracks(ctx context.Context, playlistID string) ([]TrendRecord, error) {
	var result struct {
		Items []struct {
			Track *spotifyTrack `json:"track"`
		} `json:"items"`
	}
	if err := s.getJSON(ctx, s.apiURL+"/playlists/"+playlistID+"/tracks", &result); err != nil {
		return nil, err
	}

	var trends []TrendRecord
	for _, item := range result.Items {
		track := item.Track
		if track == nil || track.Name == "" || track.ExternalURLs.Spotify == "" {
			continue
		}

		names := make([]string, 0, len(track.Artists))
		for _, artist := range track.Artists {
			names = append(names, artist.Name)
		}

		trends = append(trends, TrendRecord{
			Rank:       len(trends) + 1,
			Title:      track.Name,
			Artists:    strings.Join(names, ", "),
			URL:        track.ExternalURLs.Spotify,
			Album:      track.Album.Name,
			Duration:   track.DurationMS / 1000,
			Popularity: track.Popularity,
			Tag:        "trending",
		})
	}
	return trends, nil
}

func (s *SpotifyAdapter) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

type spotifyTrack struct {
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	DurationMS   int `json:"duration_ms"`
	Popularity   int `json:"popularity"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}
