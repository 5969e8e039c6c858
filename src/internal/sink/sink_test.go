// FILE: logforge/src/internal/sink/sink_test.go
package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"logforge/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNew(t *testing.T) {
	t.Run("UnknownType", func(t *testing.T) {
		_, err := New(&config.OutputConfig{Type: "syslog"}, newTestLogger())
		assert.Error(t, err)
	})

	t.Run("FileType", func(t *testing.T) {
		cfg := &config.OutputConfig{
			Type: "file",
			File: config.FileSinkConfig{Path: filepath.Join(t.TempDir(), "out.log")},
		}
		s, err := New(cfg, newTestLogger())
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, "file", s.GetStats().Type)
	})
}

func TestConsoleSink(t *testing.T) {
	t.Run("InvalidTarget", func(t *testing.T) {
		_, err := NewConsoleSink(&config.ConsoleSinkConfig{Target: "tty7"}, newTestLogger())
		assert.Error(t, err)
	})

	t.Run("WriteAndStats", func(t *testing.T) {
		var buf bytes.Buffer
		s := &ConsoleSink{
			target:    "stdout",
			out:       &buf,
			startTime: time.Now(),
			logger:    newTestLogger(),
		}

		require.NoError(t, s.Write([]byte("line one\n")))
		require.NoError(t, s.Write([]byte("line two\n")))

		assert.Equal(t, "line one\nline two\n", buf.String())

		stats := s.GetStats()
		assert.Equal(t, "console", stats.Type)
		assert.Equal(t, uint64(2), stats.TotalWrites)
		assert.Equal(t, uint64(18), stats.TotalBytes)
		assert.NoError(t, s.Close())
	})
}

func TestFileSink(t *testing.T) {
	t.Run("WritesLines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		s, err := NewFileSink(&config.FileSinkConfig{Path: path}, newTestLogger())
		require.NoError(t, err)

		require.NoError(t, s.Write([]byte("first\n")))
		require.NoError(t, s.Write([]byte("second\n")))
		require.NoError(t, s.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(data))
	})

	t.Run("CreatesParentDirectories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deep", "app.log")
		s, err := NewFileSink(&config.FileSinkConfig{Path: path}, newTestLogger())
		require.NoError(t, err)
		require.NoError(t, s.Write([]byte("x\n")))
		require.NoError(t, s.Close())

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("WriteAfterCloseFails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		s, err := NewFileSink(&config.FileSinkConfig{Path: path}, newTestLogger())
		require.NoError(t, err)
		require.NoError(t, s.Close())
		assert.Error(t, s.Write([]byte("late\n")))
	})

	t.Run("RotatesBySize", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "app.log")

		// ~100 byte threshold via a fractional MB size.
		s, err := NewFileSink(&config.FileSinkConfig{
			Path:            path,
			RotationEnabled: true,
			RotationSizeMB:  100.0 / (1024 * 1024),
		}, newTestLogger())
		require.NoError(t, err)

		line := []byte(strings.Repeat("a", 29) + "\n")
		for i := 0; i < 20; i++ {
			require.NoError(t, s.Write(line))
		}
		require.NoError(t, s.Close())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Greater(t, len(entries), 1, "expected rotated files alongside the active one")

		// Every produced file holds only whole lines; no write was split
		// across a rotation boundary.
		var total int
		for _, e := range entries {
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			if len(data) == 0 {
				continue
			}
			assert.Equal(t, byte('\n'), data[len(data)-1], "%s does not end at a line boundary", e.Name())
			assert.Zero(t, len(data)%30, "%s holds a partial line", e.Name())
			total += len(data)
		}
		assert.Equal(t, 20*30, total)

		stats := s.GetStats()
		assert.Equal(t, uint64(20), stats.TotalWrites)
		assert.Equal(t, uint64(600), stats.TotalBytes)
		assert.Greater(t, stats.Details["rotations"].(uint64), uint64(0))
	})

	t.Run("NoRotationWhenDisabled", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "app.log")

		s, err := NewFileSink(&config.FileSinkConfig{Path: path}, newTestLogger())
		require.NoError(t, err)

		line := []byte(strings.Repeat("b", 99) + "\n")
		for i := 0; i < 50; i++ {
			require.NoError(t, s.Write(line))
		}
		require.NoError(t, s.Close())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
