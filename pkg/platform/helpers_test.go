package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// memSink captures raw diagnostic writes for assertions.
type memSink struct {
	writes map[string][]byte
}

func newMemSink() *memSink {
	return &memSink{writes: make(map[string][]byte)}
}

func (m *memSink) WriteRaw(name string, data []byte) error {
	m.writes[name] = data
	return nil
}
