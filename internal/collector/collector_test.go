package collector

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajay-panchal-099/daily-news-trend/internal/snapshot"
	"github.com/ajay-panchal-099/daily-news-trend/pkg/platform"
)

// fakeAdapter returns canned trends or a canned error and records calls.
type fakeAdapter struct {
	p      platform.Platform
	snap   *platform.Snapshot
	err    error
	called int
}

func (f *fakeAdapter) Platform() platform.Platform { return f.p }

func (f *fakeAdapter) Collect(ctx context.Context) (*platform.Snapshot, error) {
	f.called++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func okSnap(title string) *platform.Snapshot {
	return &platform.Snapshot{
		Trends: []platform.TrendRecord{{Rank: 1, Title: title, URL: "https://example.com"}},
	}
}

func newTestCollector(t *testing.T, adapters ...platform.Adapter) (*Collector, *snapshot.Store) {
	t.Helper()
	store, err := snapshot.New(t.TempDir())
	require.NoError(t, err)
	return New(store, adapters, 0, nil, nil), store
}

func TestCollectOneFreshWrite(t *testing.T) {
	adapter := &fakeAdapter{p: platform.News, snap: okSnap("headline")}
	c, store := newTestCollector(t, adapter)

	assert.True(t, c.CollectOne(context.Background(), adapter))

	snap, err := store.Read(platform.News)
	require.NoError(t, err)
	assert.Equal(t, "headline", snap.Trends[0].Title)
	assert.NotEmpty(t, snap.LastUpdated)
}

func TestCollectOneFallsBackToExistingSnapshot(t *testing.T) {
	adapter := &fakeAdapter{p: platform.News, err: errors.New("network down")}
	c, store := newTestCollector(t, adapter)

	stale := okSnap("stale headline")
	stale.LastUpdated = "2025-03-01 09:00:00 IST"
	require.NoError(t, store.Write(platform.News, stale))
	before, err := os.ReadFile(store.Path(platform.News))
	require.NoError(t, err)

	assert.True(t, c.CollectOne(context.Background(), adapter))

	// Stale data stays authoritative, byte for byte.
	after, err := os.ReadFile(store.Path(platform.News))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCollectOneTerminalFailure(t *testing.T) {
	adapter := &fakeAdapter{p: platform.Twitter, err: errors.New("selector miss")}
	c, store := newTestCollector(t, adapter)

	assert.False(t, c.CollectOne(context.Background(), adapter))
	_, err := os.Stat(store.Path(platform.Twitter))
	assert.True(t, os.IsNotExist(err), "terminal failure must not create a file")
}

func TestCollectOneEmptyResultFallsBack(t *testing.T) {
	adapter := &fakeAdapter{p: platform.Google, snap: &platform.Snapshot{}}
	c, _ := newTestCollector(t, adapter)
	assert.False(t, c.CollectOne(context.Background(), adapter))
}

func TestCollectAllIsolation(t *testing.T) {
	failing := &fakeAdapter{p: platform.Reddit, err: errors.New("rate limited")}
	adapters := []platform.Adapter{
		&fakeAdapter{p: platform.Spotify, snap: okSnap("song")},
		failing,
		&fakeAdapter{p: platform.YouTube, snap: okSnap("video")},
		&fakeAdapter{p: platform.News, snap: okSnap("headline")},
		&fakeAdapter{p: platform.Twitter, snap: okSnap("tag")},
		&fakeAdapter{p: platform.Google, snap: okSnap("query")},
	}
	c, _ := newTestCollector(t, adapters...)

	results := c.CollectAll(context.Background())

	assert.False(t, results[platform.Reddit])
	for _, p := range []platform.Platform{
		platform.Spotify, platform.YouTube, platform.News, platform.Twitter, platform.Google,
	} {
		assert.True(t, results[p], "platform %s", p)
	}
	for _, a := range adapters {
		assert.Equal(t, 1, a.(*fakeAdapter).called)
	}
}

func TestCollectAllRunsArchiver(t *testing.T) {
	archiver := &fakeArchiver{}
	store, err := snapshot.New(t.TempDir())
	require.NoError(t, err)

	adapter := &fakeAdapter{p: platform.News, snap: okSnap("headline")}
	c := New(store, []platform.Adapter{adapter}, 0, archiver, nil)
	c.CollectAll(context.Background())

	assert.Equal(t, 1, archiver.calls)
}

func TestAdapterLookup(t *testing.T) {
	adapter := &fakeAdapter{p: platform.News}
	c, _ := newTestCollector(t, adapter)

	assert.Equal(t, adapter, c.Adapter(platform.News))
	assert.Nil(t, c.Adapter(platform.Spotify))
}

type fakeArchiver struct{ calls int }

func (f *fakeArchiver) PushIfChanged(ctx context.Context, dir string) error {
	f.calls++
	return nil
}
