package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration for the demo binary.
type Config struct {
	UI      UI
	Logging Logging
	Flags   map[string]string
	Args    []string
}

// UI holds session construction options.
type UI struct {
	Title        string
	Width        int
	Height       int
	NoGUI        bool
	PollInterval time.Duration
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envTitle        = "CHIBIUI_TITLE"
	envWidth        = "CHIBIUI_WIDTH"
	envHeight       = "CHIBIUI_HEIGHT"
	envNoGUI        = "CHIBIUI_NOGUI"
	envTrace        = "CHIBIUI_TRACE"
	envLogFile      = "CHIBIUI_LOG_FILE"
	envPollInterval = "CHIBIUI_POLL_INTERVAL"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// MustLoad is Load with usage errors reported fatally.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("chibiui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	title := fs.String("title", envOrDefault(env, envTitle, "ChibiUI"), "window title")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	nogui := fs.Bool("nogui", envOrBool(env, envNoGUI, false), "run headless: keep the value tree without rendering")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	poll := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, 100*time.Millisecond), "interval between button polls")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		UI: UI{
			Title:        *title,
			Width:        *width,
			Height:       *height,
			NoGUI:        *nogui,
			PollInterval: *poll,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"title":        *title,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"nogui":        strconv.FormatBool(*nogui),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
			"pollInterval": poll.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// Validate rejects configurations the session cannot honour.
func Validate(cfg Config) error {
	if cfg.UI.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.UI.Width)
	}
	if cfg.UI.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.UI.Height)
	}
	if cfg.UI.PollInterval <= 0 {
		return fmt.Errorf("poll-interval must be positive (got %s)", cfg.UI.PollInterval)
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	if v, ok := env[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	if v, ok := env[key]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	if v, ok := env[key]; ok {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
