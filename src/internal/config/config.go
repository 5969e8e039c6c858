// FILE: logforge/src/internal/config/config.go
package config

// Config is the immutable root configuration, constructed once at
// startup and passed by reference into every component.
type Config struct {
	Generator GeneratorConfig `toml:"generator"`
	Output    OutputConfig    `toml:"output"`
	Format    FormatConfig    `toml:"format"`
	Content   ContentConfig   `toml:"content"`
	Status    StatusConfig    `toml:"status"`
	Logging   LogConfig       `toml:"logging"`

	// Quiet suppresses all operational output; generated log lines
	// still flow to the configured sink.
	Quiet bool `toml:"quiet"`
}

// GeneratorConfig drives the segmented generation engine. Rates are in
// MB/s, durations in seconds.
type GeneratorConfig struct {
	DurationNormal          float64 `toml:"duration_normal"`
	DurationPeak            float64 `toml:"duration_peak"`
	RateNormalMin           float64 `toml:"rate_normal_min"`
	RateNormalMax           float64 `toml:"rate_normal_max"`
	RatePeak                float64 `toml:"rate_peak"`
	LogLineSize             int64   `toml:"log_line_size"`
	BaseExitProbability     float64 `toml:"base_exit_probability"`
	RateChangeProbability   float64 `toml:"rate_change_probability"`
	RateChangeMaxPercentage float64 `toml:"rate_change_max_percentage"`

	// StopAfterSeconds bounds the total run time; -1 runs until an
	// explicit stop.
	StopAfterSeconds float64 `toml:"stop_after_seconds"`

	// Seed for the pseudo-random source; 0 derives a seed from the
	// current time.
	Seed uint64 `toml:"seed"`
}

type OutputConfig struct {
	// Type selects the sink: "console", "file" or "tcp".
	Type    string            `toml:"type"`
	Console ConsoleSinkConfig `toml:"console"`
	File    FileSinkConfig    `toml:"file"`
	TCP     TCPSinkConfig     `toml:"tcp"`
}

type ConsoleSinkConfig struct {
	Target string `toml:"target"` // "stdout" or "stderr"
}

type FileSinkConfig struct {
	Path            string  `toml:"path"`
	RotationEnabled bool    `toml:"rotation_enabled"`
	RotationSizeMB  float64 `toml:"rotation_size_mb"`
}

type TCPSinkConfig struct {
	Host       string `toml:"host"`
	Port       int64  `toml:"port"`
	BufferSize int64  `toml:"buffer_size"`
}

type FormatConfig struct {
	// Mode selects the formatter: "http", "custom" or "json".
	Mode string `toml:"mode"`

	// Template is the custom-mode layout with ${placeholder} fields.
	// Unknown placeholders pass through literally.
	Template        string   `toml:"template"`
	TimestampFormat string   `toml:"timestamp_format"`
	AppNames        []string `toml:"app_names"`
}

// ContentConfig feeds the line synthesizer.
type ContentConfig struct {
	LogLevels          []string            `toml:"log_levels"`
	HTTPMethods        []string            `toml:"http_methods"`
	HTTPPaths          []string            `toml:"http_paths"`
	HTTPStatusMessages map[string][]string `toml:"http_status_messages"`
	UserAgentBrowsers  []string            `toml:"user_agent_browsers"`
	UserAgentSystems   []string            `toml:"user_agent_systems"`
	UserAgentPoolSize  int64               `toml:"user_agent_pool_size"`
}

// StatusConfig controls the optional HTTP status endpoint.
type StatusConfig struct {
	Enabled           bool   `toml:"enabled"`
	Host              string `toml:"host"`
	Port              int64  `toml:"port"`
	RequestsPerSecond int64  `toml:"requests_per_second"`
	Burst             int64  `toml:"burst"`
}

// LogConfig controls the application's own operational logging, not the
// generated output.
type LogConfig struct {
	Output    string `toml:"output"` // "stdout", "stderr", "file", "none"
	Level     string `toml:"level"`  // "debug", "info", "warn", "error"
	Directory string `toml:"directory"`
	Name      string `toml:"name"`
}

func defaults() *Config {
	return &Config{
		Generator: GeneratorConfig{
			DurationNormal:          10,
			DurationPeak:            2,
			RateNormalMin:           0.0001,
			RateNormalMax:           1.0,
			RatePeak:                2.0,
			LogLineSize:             100,
			BaseExitProbability:     0.02,
			RateChangeProbability:   0.1,
			RateChangeMaxPercentage: 0.1,
			StopAfterSeconds:        -1,
		},
		Output: OutputConfig{
			Type: "console",
			Console: ConsoleSinkConfig{
				Target: "stdout",
			},
			File: FileSinkConfig{
				Path:            "logs/generated.log",
				RotationEnabled: true,
				RotationSizeMB:  10,
			},
			TCP: TCPSinkConfig{
				Host:       "127.0.0.1",
				Port:       9514,
				BufferSize: 1000,
			},
		},
		Format: FormatConfig{
			Mode:            "http",
			Template:        "${timestamp}, ${log_level}, ${message}",
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		},
		Content: ContentConfig{
			LogLevels:   []string{"DEBUG", "INFO", "WARNING", "ERROR"},
			HTTPMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
			HTTPPaths: []string{
				"/api/users", "/api/orders", "/api/search",
				"/login", "/logout", "/health", "/static/app.js",
			},
			HTTPStatusMessages: map[string][]string{
				"200": {"Request completed successfully", "Resource retrieved", "Query executed"},
				"201": {"Resource created", "Upload accepted"},
				"301": {"Resource moved permanently"},
				"400": {"Malformed request payload", "Missing required parameter"},
				"401": {"Authentication required", "Token expired"},
				"403": {"Access denied for resource"},
				"404": {"Resource not found", "Unknown endpoint"},
				"500": {"Internal processing error", "Unhandled exception in worker"},
				"502": {"Upstream service unavailable"},
			},
			UserAgentBrowsers: []string{"Chrome", "Firefox", "Safari", "Edge", "Opera"},
			UserAgentSystems: []string{
				"Windows NT 10.0; Win64; x64",
				"Macintosh; Intel Mac OS X 13_5",
				"X11; Linux x86_64",
				"iPhone; CPU iPhone OS 16_5 like Mac OS X",
				"Android 13; Mobile",
			},
			UserAgentPoolSize: 100,
		},
		Status: StatusConfig{
			Enabled:           false,
			Host:              "127.0.0.1",
			Port:              8686,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Logging: LogConfig{
			Output: "stderr",
			Level:  "info",
			Name:   "logforge",
		},
	}
}
