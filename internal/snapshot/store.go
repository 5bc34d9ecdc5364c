// Package snapshot persists per-platform trend snapshots as JSON
// documents in a single directory. Each file is fully replaced on write;
// the previous snapshot doubles as the stale-but-available fallback.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajay-panchal-099/daily-news-trend/pkg/platform"
)

// TopN is the display truncation applied by the read path.
const TopN = 10

// Store is a directory of <platform>_trends.json documents.
type Store struct {
	dir string
}

// New creates the snapshot directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the snapshot directory path.
func (s *Store) Dir() string { return s.dir }

// Path returns the snapshot file path for a platform.
func (s *Store) Path(p platform.Platform) string {
	return filepath.Join(s.dir, string(p)+"_trends.json")
}

// Write replaces a platform's snapshot. The document is staged in a temp
// file and renamed into place so a concurrent reader never observes a
// partial write.
func (s *Store) Write(p platform.Platform, snap *platform.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", p, err)
	}

	tmp, err := os.CreateTemp(s.dir, string(p)+"_trends.*.tmp")
	if err != nil {
		return fmt.Errorf("stage %s snapshot: %w", p, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s snapshot: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s snapshot: %w", p, err)
	}
	if err := os.Rename(tmpName, s.Path(p)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s snapshot: %w", p, err)
	}
	return nil
}

// Read loads a platform's current snapshot.
func (s *Store) Read(p platform.Platform) (*platform.Snapshot, error) {
	data, err := os.ReadFile(s.Path(p))
	if err != nil {
		return nil, fmt.Errorf("read %s snapshot: %w", p, err)
	}
	var snap platform.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", p, err)
	}
	return &snap, nil
}

// HasUsable implements the fallback policy: true iff the platform's
// snapshot exists, parses, and holds at least one trend. Never errors;
// any I/O problem reads as "no usable data".
func (s *Store) HasUsable(p platform.Platform) bool {
	snap, err := s.Read(p)
	return err == nil && len(snap.Trends) > 0
}

// Top10 reads a platform's snapshot, applies its display ranking, and
// truncates to TopN. The empty-result contract is explicit: a missing,
// unreadable, or empty snapshot yields a non-nil snapshot with an empty
// trends list and a blank timestamp, so the serving layer always has a
// renderable value.
func (s *Store) Top10(p platform.Platform) *platform.Snapshot {
	snap, err := s.Read(p)
	if err != nil || len(snap.Trends) == 0 {
		return &platform.Snapshot{Trends: []platform.TrendRecord{}}
	}

	trends := make([]platform.TrendRecord, len(snap.Trends))
	copy(trends, snap.Trends)
	platform.SortForDisplay(p, trends)
	if len(trends) > TopN {
		trends = trends[:TopN]
	}

	return &platform.Snapshot{
		Trends:      trends,
		LastUpdated: snap.LastUpdated,
		Source:      snap.Source,
	}
}

// WriteRaw persists a diagnostic payload (raw scraped page, raw API
// response) next to the snapshots. Best-effort by contract.
func (s *Store) WriteRaw(name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, filepath.Base(name)), data, 0o644)
}
