package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DirDigest computes a content digest over the snapshot documents in dir.
// Only *_trends.json files participate; diagnostic blobs don't gate the
// push. Files are hashed in sorted name order so the digest is stable.
func DirDigest(dir string) (string, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*_trends.json"))
	if err != nil {
		return "", fmt.Errorf("list snapshots in %s: %w", dir, err)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		h.Write([]byte(filepath.Base(name)))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Changed reports whether the store contents differ from the last pushed
// state. An empty old digest (first run) always counts as changed.
func Changed(oldDigest, newDigest string) bool {
	return oldDigest == "" || oldDigest != newDigest
}
