// FILE: logforge/src/internal/service/service_test.go
package service

import (
	"context"
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

func fileConfig(t *testing.T) (*config.Config, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "generated.log")
	return &config.Config{
		Generator: config.GeneratorConfig{
			DurationNormal:          1,
			DurationPeak:            0.5,
			RateNormalMin:           0.01,
			RateNormalMax:           0.02,
			RatePeak:                0.05,
			LogLineSize:             100,
			BaseExitProbability:     0.02,
			RateChangeProbability:   0.1,
			RateChangeMaxPercentage: 0.1,
			StopAfterSeconds:        -1,
			Seed:                    12345,
		},
		Output: config.OutputConfig{
			Type: "file",
			File: config.FileSinkConfig{Path: path},
		},
		Format: config.FormatConfig{
			Mode:            "custom",
			Template:        "${timestamp} ${level} ${message}",
			TimestampFormat: time.RFC3339,
		},
		Content: config.ContentConfig{
			LogLevels: []string{"DEBUG", "INFO", "ERROR"},
		},
	}, path
}

func TestServiceSessionLifecycle(t *testing.T) {
	svc := New(context.Background(), newTestLogger())
	defer svc.Shutdown()

	cfg, path := fileConfig(t)
	session, err := svc.StartSession(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	got, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Contains(t, svc.ListSessions(), session.ID)

	// Give the engine a moment to emit before stopping.
	time.Sleep(300 * time.Millisecond)

	snap, err := svc.StopSession(session.ID)
	require.NoError(t, err)
	assert.Greater(t, snap.TotalLines, uint64(0))

	_, err = svc.GetSession(session.ID)
	assert.Error(t, err, "stopped session must be removed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, uint64(len(lines)), snap.TotalLines)
}

func TestServiceStopUnknownSession(t *testing.T) {
	svc := New(context.Background(), newTestLogger())
	defer svc.Shutdown()

	_, err := svc.StopSession("no-such-session")
	assert.Error(t, err)
}

func TestServiceRejectsInvalidSessionConfig(t *testing.T) {
	svc := New(context.Background(), newTestLogger())
	defer svc.Shutdown()

	cfg, _ := fileConfig(t)
	cfg.Format.Mode = "xml"

	_, err := svc.StartSession(cfg)
	assert.Error(t, err)
	assert.Empty(t, svc.ListSessions())
}

func TestServiceShutdownStopsAllSessions(t *testing.T) {
	svc := New(context.Background(), newTestLogger())

	var sessions []*Session
	for i := 0; i < 3; i++ {
		cfg, _ := fileConfig(t)
		session, err := svc.StartSession(cfg)
		require.NoError(t, err)
		sessions = append(sessions, session)
	}
	require.Len(t, svc.ListSessions(), 3)

	svc.Shutdown()

	assert.Empty(t, svc.ListSessions())
	for _, session := range sessions {
		select {
		case <-session.Done():
		default:
			t.Errorf("session %s still running after shutdown", session.ID)
		}
	}
}

func TestSessionBoundedRunEndsOnItsOwn(t *testing.T) {
	svc := New(context.Background(), newTestLogger())
	defer svc.Shutdown()

	cfg, _ := fileConfig(t)
	cfg.Generator.StopAfterSeconds = 0.2

	session, err := svc.StartSession(cfg)
	require.NoError(t, err)

	select {
	case <-session.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("bounded session did not finish")
	}

	snap, err := session.Wait()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.Elapsed, 200*time.Millisecond)
}

func TestServiceGlobalStats(t *testing.T) {
	svc := New(context.Background(), newTestLogger())
	defer svc.Shutdown()

	cfg, _ := fileConfig(t)
	session, err := svc.StartSession(cfg)
	require.NoError(t, err)

	stats := svc.GetGlobalStats()
	assert.Equal(t, 1, stats["total_sessions"])

	sessionStats, ok := stats["sessions"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, sessionStats, session.ID)
}
