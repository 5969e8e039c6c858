// FILE: logforge/src/internal/config/validation.go
package config

import (
	"fmt"
	"strconv"
)

// validateConfig is the centralized validator for the entire
// configuration. It rejects invalid bounds before the engine starts, so
// no output is ever produced under a broken configuration.
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateGenerator(&cfg.Generator); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	if err := validateFormat(cfg); err != nil {
		return fmt.Errorf("format config: %w", err)
	}
	if err := validateContent(&cfg.Content); err != nil {
		return fmt.Errorf("content config: %w", err)
	}
	if err := validateStatus(&cfg.Status); err != nil {
		return fmt.Errorf("status config: %w", err)
	}
	if err := validateLogging(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateGenerator(g *GeneratorConfig) error {
	if g.DurationNormal <= 0 {
		return fmt.Errorf("duration_normal must be positive, got %g", g.DurationNormal)
	}
	if g.DurationPeak <= 0 {
		return fmt.Errorf("duration_peak must be positive, got %g", g.DurationPeak)
	}
	if g.RateNormalMin < 0 {
		return fmt.Errorf("rate_normal_min must be non-negative, got %g", g.RateNormalMin)
	}
	if g.RateNormalMin > g.RateNormalMax {
		return fmt.Errorf("rate_normal_min (%g) must not exceed rate_normal_max (%g)",
			g.RateNormalMin, g.RateNormalMax)
	}
	if g.RatePeak < 0 {
		return fmt.Errorf("rate_peak must be non-negative, got %g", g.RatePeak)
	}
	if g.LogLineSize < 1 {
		return fmt.Errorf("log_line_size must be at least 1, got %d", g.LogLineSize)
	}
	if err := probability("base_exit_probability", g.BaseExitProbability); err != nil {
		return err
	}
	if err := probability("rate_change_probability", g.RateChangeProbability); err != nil {
		return err
	}
	if g.RateChangeMaxPercentage < 0 {
		return fmt.Errorf("rate_change_max_percentage must be non-negative, got %g",
			g.RateChangeMaxPercentage)
	}
	if g.StopAfterSeconds < 0 && g.StopAfterSeconds != -1 {
		return fmt.Errorf("stop_after_seconds must be -1 or non-negative, got %g",
			g.StopAfterSeconds)
	}
	return nil
}

func validateOutput(o *OutputConfig) error {
	switch o.Type {
	case "console":
		if o.Console.Target != "stdout" && o.Console.Target != "stderr" {
			return fmt.Errorf("invalid console target: %s", o.Console.Target)
		}
	case "file":
		if o.File.Path == "" {
			return fmt.Errorf("file sink requires a path")
		}
		if o.File.RotationEnabled && o.File.RotationSizeMB <= 0 {
			return fmt.Errorf("rotation_size_mb must be positive when rotation is enabled, got %g",
				o.File.RotationSizeMB)
		}
	case "tcp":
		if o.TCP.Port < 1 || o.TCP.Port > 65535 {
			return fmt.Errorf("invalid tcp port: %d", o.TCP.Port)
		}
		if o.TCP.BufferSize < 1 {
			return fmt.Errorf("tcp buffer_size must be positive, got %d", o.TCP.BufferSize)
		}
	default:
		return fmt.Errorf("invalid output type: %s", o.Type)
	}
	return nil
}

func validateFormat(cfg *Config) error {
	f := &cfg.Format
	switch f.Mode {
	case "http":
		if len(cfg.Content.HTTPStatusMessages) == 0 {
			return fmt.Errorf("http mode requires a non-empty http_status_messages catalog")
		}
	case "custom":
		if f.Template == "" {
			return fmt.Errorf("custom mode requires a template")
		}
	case "json":
	default:
		return fmt.Errorf("invalid format mode: %s", f.Mode)
	}
	if f.TimestampFormat == "" {
		return fmt.Errorf("timestamp_format must not be empty")
	}
	return nil
}

func validateContent(c *ContentConfig) error {
	if len(c.LogLevels) == 0 {
		return fmt.Errorf("log_levels must not be empty")
	}
	for code := range c.HTTPStatusMessages {
		n, err := strconv.Atoi(code)
		if err != nil || n < 100 || n > 599 {
			return fmt.Errorf("invalid http status code in catalog: %q", code)
		}
	}
	if c.UserAgentPoolSize < 0 {
		return fmt.Errorf("user_agent_pool_size must be non-negative, got %d", c.UserAgentPoolSize)
	}
	return nil
}

func validateStatus(s *StatusConfig) error {
	if !s.Enabled {
		return nil
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid status port: %d", s.Port)
	}
	if s.RequestsPerSecond < 1 {
		return fmt.Errorf("requests_per_second must be positive, got %d", s.RequestsPerSecond)
	}
	if s.Burst < 1 {
		return fmt.Errorf("burst must be positive, got %d", s.Burst)
	}
	return nil
}

func validateLogging(l *LogConfig) error {
	validOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true, "none": true,
	}
	if !validOutputs[l.Output] {
		return fmt.Errorf("invalid log output mode: %s", l.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	if l.Output == "file" && l.Directory == "" {
		return fmt.Errorf("file log output requires a directory")
	}

	return nil
}

func probability(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be within [0,1], got %g", name, v)
	}
	return nil
}
