// FILE: logforge/src/cmd/logforge/bootstrap.go
package main

import (
	"fmt"

	"logforge/src/internal/config"

	"github.com/lixenwraith/log"
)

// initializeLogger sets up the operational logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	var configArgs []string

	if cfg.Quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		if err := logger.ApplyConfigString(configArgs...); err != nil {
			return err
		}
		return logger.Start()
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs,
			"enable_stdout=false",
			fmt.Sprintf("directory=%s", cfg.Logging.Directory),
			fmt.Sprintf("name=%s", cfg.Logging.Name))

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if err := logger.ApplyConfigString(configArgs...); err != nil {
		return err
	}
	return logger.Start()
}
