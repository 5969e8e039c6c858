// FILE: logforge/src/cmd/logforge/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"logforge/src/internal/config"

	"github.com/lixenwraith/log"
)

// flagConfig carries the parsed command line.
type flagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool

	StopAfter float64
	Seed      uint64
	Output    string

	LogOutput string
	LogLevel  string
	LogDir    string
}

func parseFlags() (*flagConfig, error) {
	fc := &flagConfig{}

	flag.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	flag.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&fc.Quiet, "quiet", false, "Suppress operational output")

	flag.Float64Var(&fc.StopAfter, "stop-after", -2, "Stop after N seconds, -1 runs until interrupted (overrides config)")
	flag.Uint64Var(&fc.Seed, "seed", 0, "Random seed, 0 derives one from the clock (overrides config)")
	flag.StringVar(&fc.Output, "output", "", "Sink type: console, file, tcp (overrides config)")

	flag.StringVar(&fc.LogOutput, "log-output", "", "Log output: stdout, stderr, file, none (overrides config)")
	flag.StringVar(&fc.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.StringVar(&fc.LogDir, "log-dir", "", "Log directory (when using file output)")

	flag.Usage = customUsage
	flag.Parse()

	if fc.LogLevel != "" {
		if _, err := parseLogLevel(fc.LogLevel); err != nil {
			return nil, err
		}
	}

	return fc, nil
}

// apply folds the CLI overrides into the loaded configuration.
func (fc *flagConfig) apply(cfg *config.Config) {
	if fc.Quiet {
		cfg.Quiet = true
	}
	if fc.StopAfter >= -1 {
		cfg.Generator.StopAfterSeconds = fc.StopAfter
	}
	if fc.Seed != 0 {
		cfg.Generator.Seed = fc.Seed
	}
	if fc.Output != "" {
		cfg.Output.Type = fc.Output
	}
	if fc.LogOutput != "" {
		cfg.Logging.Output = fc.LogOutput
	}
	if fc.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(fc.LogLevel)
	}
	if fc.LogDir != "" {
		cfg.Logging.Directory = fc.LogDir
	}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "logforge - Rate-Controlled Synthetic Log Generator\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")

	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress operational output\n")

	fmt.Fprintf(os.Stderr, "\nGeneration:\n")
	fmt.Fprintf(os.Stderr, "  -stop-after float\n\tStop after N seconds, -1 runs until interrupted (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -seed uint\n\tRandom seed, 0 derives one from the clock (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -output string\n\tSink type: console, file, tcp (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tLog output: stdout, stderr, file, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-dir string\n\tLog directory (when using file output)\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Generate to stdout until interrupted\n")
	fmt.Fprintf(os.Stderr, "  %s\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Generate to a rotating file for one minute\n")
	fmt.Fprintf(os.Stderr, "  %s --output file --stop-after 60\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Reproducible run with a fixed seed\n")
	fmt.Fprintf(os.Stderr, "  %s --seed 42 --stop-after 10\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  LOGFORGE_CONFIG_FILE   Config file path\n")
	fmt.Fprintf(os.Stderr, "  LOGFORGE_CONFIG_DIR    Config directory\n")
	fmt.Fprintf(os.Stderr, "  LOGFORGE_*             Override any config field, e.g. LOGFORGE_GENERATOR_RATE_PEAK\n")
}
