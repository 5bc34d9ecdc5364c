package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajay-panchal-099/daily-news-trend/internal/collector"
	"github.com/ajay-panchal-099/daily-news-trend/internal/snapshot"
	"github.com/ajay-panchal-099/daily-news-trend/pkg/platform"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAdapter struct {
	p    platform.Platform
	snap *platform.Snapshot
	err  error
}

func (s *stubAdapter) Platform() platform.Platform { return s.p }

func (s *stubAdapter) Collect(ctx context.Context) (*platform.Snapshot, error) {
	return s.snap, s.err
}

func okSnap(title string) *platform.Snapshot {
	return &platform.Snapshot{
		Trends: []platform.TrendRecord{{Rank: 1, Title: title, URL: "https://example.com"}},
	}
}

func newTestServer(t *testing.T, adapters ...platform.Adapter) (*Server, *snapshot.Store) {
	t.Helper()
	store, err := snapshot.New(t.TempDir())
	require.NoError(t, err)
	c := collector.New(store, adapters, 0, nil, nil)
	return New(store, c, 0), store
}

func doRequest(srv *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doRequest(srv, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlatformTrends(t *testing.T) {
	srv, store := newTestServer(t)
	require.NoError(t, store.Write(platform.News, &platform.Snapshot{
		Trends:      []platform.TrendRecord{{Rank: 1, Title: "headline", URL: "u"}},
		LastUpdated: "2025-04-01 18:30:00 IST",
	}))

	w := doRequest(srv, http.MethodGet, "/api/v1/trends/news")
	require.Equal(t, http.StatusOK, w.Code)

	var snap platform.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Trends, 1)
	assert.Equal(t, "headline", snap.Trends[0].Title)
	assert.Equal(t, "2025-04-01 18:30:00 IST", snap.LastUpdated)
}

func TestPlatformTrendsUnknown(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doRequest(srv, http.MethodGet, "/api/v1/trends/myspace")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlatformTrendsEmptyContract(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doRequest(srv, http.MethodGet, "/api/v1/trends/spotify")
	require.Equal(t, http.StatusOK, w.Code)

	var snap struct {
		Trends      []platform.TrendRecord `json:"trends"`
		LastUpdated string                 `json:"last_updated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.NotNil(t, snap.Trends)
	assert.Empty(t, snap.Trends)
	assert.Empty(t, snap.LastUpdated)
}

func TestAllTrendsColdStart(t *testing.T) {
	// No data on disk: the combined view triggers one collection run.
	srv, store := newTestServer(t,
		&stubAdapter{p: platform.News, snap: okSnap("fresh headline")},
		&stubAdapter{p: platform.Reddit, err: errors.New("down")},
	)

	w := doRequest(srv, http.MethodGet, "/api/v1/trends")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.HasUsable(platform.News), "cold start must collect")

	var resp struct {
		Data map[string]platform.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Data, "news")
	assert.Equal(t, "fresh headline", resp.Data["news"].Trends[0].Title)
	// A dead platform renders as an explicit empty list, not an error.
	assert.Empty(t, resp.Data["reddit"].Trends)
}

func TestCollectEndpoint(t *testing.T) {
	srv, store := newTestServer(t,
		&stubAdapter{p: platform.News, snap: okSnap("headline")},
		&stubAdapter{p: platform.Twitter, err: errors.New("blocked")},
	)

	w := doRequest(srv, http.MethodPost, "/api/v1/collect")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status    string          `json:"status"`
		Platforms map[string]bool `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.True(t, resp.Platforms["news"])
	assert.False(t, resp.Platforms["twitter"])
	assert.True(t, store.HasUsable(platform.News))
}

func TestRefreshDataSkipsGoogle(t *testing.T) {
	google := &stubAdapter{p: platform.Google, snap: okSnap("query")}
	news := &stubAdapter{p: platform.News, snap: okSnap("headline")}
	srv, store := newTestServer(t, news, google)

	w := doRequest(srv, http.MethodGet, "/refresh-data")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Platforms map[string]bool `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp.Platforms, "google")
	assert.True(t, resp.Platforms["news"])
	// The quota-limited platform is untouched.
	assert.False(t, store.HasUsable(platform.Google))
}

func TestRefreshGoogleOnly(t *testing.T) {
	google := &stubAdapter{p: platform.Google, snap: okSnap("query")}
	srv, store := newTestServer(t, google)

	w := doRequest(srv, http.MethodGet, "/refresh-google-trends")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status   string `json:"status"`
		Platform string `json:"platform"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "google", resp.Platform)
	assert.True(t, store.HasUsable(platform.Google))
}
