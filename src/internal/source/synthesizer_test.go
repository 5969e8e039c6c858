// FILE: logforge/src/internal/source/synthesizer_test.go
package source

import (
	"math/rand/v2"
	"strconv"
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

func newTestConfig(mode string) *config.Config {
	return &config.Config{
		Format: config.FormatConfig{
			Mode:     mode,
			AppNames: []string{"api-gateway", "auth-service"},
		},
		Content: config.ContentConfig{
			LogLevels:   []string{"DEBUG", "INFO", "WARNING", "ERROR"},
			HTTPMethods: []string{"GET", "POST", "PUT"},
			HTTPPaths:   []string{"/api/users", "/api/orders", "/health"},
			HTTPStatusMessages: map[string][]string{
				"200": {"Request completed successfully", "Resource retrieved"},
				"404": {"Resource not found"},
				"500": {"Internal server error occurred", "Unexpected failure"},
			},
			UserAgentBrowsers: []string{"Chrome", "Firefox", "Safari"},
			UserAgentSystems:  []string{"Windows NT 10.0; Win64; x64", "Macintosh; Intel Mac OS X 10_15_7"},
			UserAgentPoolSize: 50,
		},
	}
}

func TestSynthesizerHTTPMode(t *testing.T) {
	cfg := newTestConfig("http")
	rng := rand.New(rand.NewPCG(1, 2))
	s, err := NewSynthesizer(cfg, rng, newTestLogger())
	require.NoError(t, err)

	allowed := make(map[int]map[string]bool)
	for code, msgs := range cfg.Content.HTTPStatusMessages {
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		allowed[n] = make(map[string]bool)
		for _, m := range msgs {
			allowed[n][m] = true
		}
	}

	now := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)
	seen := make(map[int]bool)

	for i := 0; i < 10000; i++ {
		rec := s.Next(now)

		msgs, ok := allowed[rec.HTTPStatus]
		require.True(t, ok, "record %d: unconfigured status %d", i, rec.HTTPStatus)
		assert.True(t, msgs[rec.Message], "record %d: message %q does not belong to status %d", i, rec.Message, rec.HTTPStatus)
		seen[rec.HTTPStatus] = true

		assert.Contains(t, cfg.Content.HTTPMethods, rec.Method)
		assert.Contains(t, cfg.Content.HTTPPaths, rec.Path)
		assert.Contains(t, cfg.Content.LogLevels, rec.Level)
		assert.Contains(t, cfg.Format.AppNames, rec.AppName)
		assert.Equal(t, now, rec.Time)
	}

	// Every configured status code should appear over 10k draws.
	for code := range allowed {
		assert.True(t, seen[code], "status %d never generated", code)
	}
}

func TestSynthesizerPlainMode(t *testing.T) {
	cfg := newTestConfig("custom")
	rng := rand.New(rand.NewPCG(3, 4))
	s, err := NewSynthesizer(cfg, rng, newTestLogger())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		rec := s.Next(time.Now())
		assert.Zero(t, rec.HTTPStatus)
		assert.Empty(t, rec.Method)
		assert.Empty(t, rec.ClientIP)
		assert.NotEmpty(t, rec.Message)
	}
}

func TestSynthesizerLevelDistribution(t *testing.T) {
	cfg := newTestConfig("custom")
	rng := rand.New(rand.NewPCG(5, 6))
	s, err := NewSynthesizer(cfg, rng, newTestLogger())
	require.NoError(t, err)

	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		counts[s.Next(time.Now()).Level]++
	}

	// INFO and DEBUG are far heavier than ERROR in the weight table; over
	// 10k draws the ordering is stable.
	assert.Greater(t, counts["INFO"], counts["ERROR"])
	assert.Greater(t, counts["DEBUG"], counts["ERROR"])
	for _, level := range cfg.Content.LogLevels {
		assert.Greater(t, counts[level], 0, "level %s never selected", level)
	}
}

func TestRandomIP(t *testing.T) {
	cfg := newTestConfig("http")
	rng := rand.New(rand.NewPCG(7, 8))
	s, err := NewSynthesizer(cfg, rng, newTestLogger())
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		ip := s.randomIP()
		octets := strings.Split(ip, ".")
		require.Len(t, octets, 4, "malformed address %q", ip)

		first, err := strconv.Atoi(octets[0])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, first, 1)
		assert.LessOrEqual(t, first, 254)

		for _, o := range octets[1:] {
			n, err := strconv.Atoi(o)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 0)
			assert.LessOrEqual(t, n, 255)
		}
	}
}

func TestAgentPool(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))

	t.Run("GeneratesFromConfiguredParts", func(t *testing.T) {
		systems := []string{"Windows NT 10.0; Win64; x64", "X11; Linux x86_64"}
		pool := NewAgentPool([]string{"Chrome", "Firefox"}, systems, 20, rng)

		for i := 0; i < 100; i++ {
			agent := pool.Random()
			assert.True(t, strings.HasPrefix(agent, "Mozilla/5.0 ("), "unexpected agent %q", agent)

			matched := false
			for _, sys := range systems {
				if strings.Contains(agent, sys) {
					matched = true
				}
			}
			assert.True(t, matched, "agent %q names no configured system", agent)
		}
	})

	t.Run("EmptyPoolFallsBack", func(t *testing.T) {
		pool := NewAgentPool(nil, nil, 0, rng)
		assert.Equal(t, fallbackAgent, pool.Random())
	})

	t.Run("EmptyPartsFallBack", func(t *testing.T) {
		pool := NewAgentPool(nil, nil, 5, rng)
		assert.Equal(t, fallbackAgent, pool.Random())
	})
}
