// FILE: logforge/src/internal/source/synthesizer.go
package source

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"time"

	"logforge/src/internal/config"
	"logforge/src/internal/core"

	"github.com/lixenwraith/log"
)

// Synthesizer produces the content of one log record at a time: level,
// message, and in http mode the status/method/path/client fields. The
// status code and message are always drawn jointly from the configured
// catalog, so a message never pairs with a status from another class.
type Synthesizer struct {
	levels     []weightedLevel
	levelTotal float64

	httpMode    bool
	statusCodes []int      // sorted for deterministic iteration
	messages    [][]string // parallel to statusCodes
	methods     []string
	paths       []string

	appNames []string
	agents   *AgentPool

	rng    *rand.Rand
	logger *log.Logger
}

type weightedLevel struct {
	name   string
	weight float64
}

// Default weights skew selection toward routine traffic; levels missing
// from the table are still selectable with a small weight.
var levelWeights = map[string]float64{
	"DEBUG":    30,
	"INFO":     45,
	"WARNING":  12,
	"WARN":     12,
	"ERROR":    8,
	"CRITICAL": 2,
}

// Generic messages for non-HTTP mode.
var plainMessages = []string{
	"User login successful",
	"Database query executed",
	"API request received",
	"File upload completed",
	"Cache updated",
	"Configuration loaded",
	"Session expired",
	"Data validation passed",
	"Background task started",
	"Email notification sent",
}

// NewSynthesizer builds a synthesizer from the content configuration.
func NewSynthesizer(cfg *config.Config, rng *rand.Rand, logger *log.Logger) (*Synthesizer, error) {
	s := &Synthesizer{
		httpMode: cfg.Format.Mode == "http",
		methods:  cfg.Content.HTTPMethods,
		paths:    cfg.Content.HTTPPaths,
		appNames: cfg.Format.AppNames,
		rng:      rng,
		logger:   logger,
	}

	for _, name := range cfg.Content.LogLevels {
		w, ok := levelWeights[name]
		if !ok {
			w = 5
		}
		s.levels = append(s.levels, weightedLevel{name: name, weight: w})
		s.levelTotal += w
	}

	for code := range cfg.Content.HTTPStatusMessages {
		n, err := strconv.Atoi(code)
		if err != nil {
			continue // rejected by config validation already
		}
		s.statusCodes = append(s.statusCodes, n)
	}
	sort.Ints(s.statusCodes)
	s.messages = make([][]string, len(s.statusCodes))
	for i, code := range s.statusCodes {
		s.messages[i] = cfg.Content.HTTPStatusMessages[strconv.Itoa(code)]
	}

	s.agents = NewAgentPool(
		cfg.Content.UserAgentBrowsers,
		cfg.Content.UserAgentSystems,
		int(cfg.Content.UserAgentPoolSize),
		rng,
	)

	return s, nil
}

// Next synthesizes one record at the given instant.
func (s *Synthesizer) Next(now time.Time) core.LogRecord {
	rec := core.LogRecord{
		Time:  now,
		Level: s.pickLevel(),
	}

	if len(s.appNames) > 0 {
		rec.AppName = s.appNames[s.rng.IntN(len(s.appNames))]
	}

	if s.httpMode && len(s.statusCodes) > 0 {
		i := s.rng.IntN(len(s.statusCodes))
		rec.HTTPStatus = s.statusCodes[i]
		rec.Message = pick(s.rng, s.messages[i], "Request processed")
		rec.Method = pick(s.rng, s.methods, "GET")
		rec.Path = pick(s.rng, s.paths, "/")
		rec.ClientIP = s.randomIP()
		rec.UserAgent = s.agents.Random()
	} else {
		rec.Message = plainMessages[s.rng.IntN(len(plainMessages))]
	}

	return rec
}

func (s *Synthesizer) pickLevel() string {
	if len(s.levels) == 0 {
		return "INFO"
	}

	target := s.rng.Float64() * s.levelTotal
	for _, wl := range s.levels {
		target -= wl.weight
		if target < 0 {
			return wl.name
		}
	}
	return s.levels[len(s.levels)-1].name
}

// randomIP generates a dotted-quad client address. The first octet is
// kept in [1,254] to avoid reserved-looking 0.x and 255.x addresses.
func (s *Synthesizer) randomIP() string {
	return strconv.Itoa(1+s.rng.IntN(254)) + "." +
		strconv.Itoa(s.rng.IntN(256)) + "." +
		strconv.Itoa(s.rng.IntN(256)) + "." +
		strconv.Itoa(s.rng.IntN(256))
}

func pick(rng *rand.Rand, list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[rng.IntN(len(list))]
}
