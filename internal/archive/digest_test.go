package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshotFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDirDigestStable(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "news_trends.json", `{"trends":[]}`)
	writeSnapshotFile(t, dir, "reddit_trends.json", `{"trends":[{"rank":1}]}`)

	first, err := DirDigest(dir)
	require.NoError(t, err)
	second, err := DirDigest(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDirDigestTracksContent(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "news_trends.json", `{"trends":[]}`)

	before, err := DirDigest(dir)
	require.NoError(t, err)

	writeSnapshotFile(t, dir, "news_trends.json", `{"trends":[{"rank":1}]}`)
	after, err := DirDigest(dir)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestDirDigestIgnoresDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "news_trends.json", `{"trends":[]}`)

	before, err := DirDigest(dir)
	require.NoError(t, err)

	writeSnapshotFile(t, dir, "twitter_debug.html", "<html></html>")
	after, err := DirDigest(dir)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestChanged(t *testing.T) {
	assert.True(t, Changed("", "abc"), "first run always pushes")
	assert.True(t, Changed("abc", "def"))
	assert.False(t, Changed("abc", "abc"))
}

type countingSink struct {
	pushes int
	err    error
}

func (c *countingSink) Name() string { return "counting" }

func (c *countingSink) Push(ctx context.Context, dir string) error {
	c.pushes++
	return c.err
}

func TestManagerSkipsUnchangedStore(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "news_trends.json", `{"trends":[]}`)

	sink := &countingSink{}
	m := NewManager([]Sink{sink}, nil)

	require.NoError(t, m.PushIfChanged(context.Background(), dir))
	require.NoError(t, m.PushIfChanged(context.Background(), dir))
	assert.Equal(t, 1, sink.pushes, "unchanged store must not push twice")

	writeSnapshotFile(t, dir, "news_trends.json", `{"trends":[{"rank":1}]}`)
	require.NoError(t, m.PushIfChanged(context.Background(), dir))
	assert.Equal(t, 2, sink.pushes)
}

func TestManagerRetriesAfterSinkFailure(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "news_trends.json", `{"trends":[]}`)

	sink := &countingSink{err: errors.New("bucket unavailable")}
	m := NewManager([]Sink{sink}, nil)

	// Sink failures never propagate; the digest does not advance.
	require.NoError(t, m.PushIfChanged(context.Background(), dir))
	sink.err = nil
	require.NoError(t, m.PushIfChanged(context.Background(), dir))
	assert.Equal(t, 2, sink.pushes)
}

func TestManagerNoSinks(t *testing.T) {
	m := NewManager(nil, nil)
	assert.NoError(t, m.PushIfChanged(context.Background(), t.TempDir()))
}
