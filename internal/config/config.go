package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr string

	AppEnv                string
	WSAllowedOrigins      []string
	DevWebSocketsAllowAll bool

	// MaxTables caps how many dealt tables the server keeps in memory.
	MaxTables int
	// MaxPasses and EmptyTableau are the rules used when a table request
	// does not set its own.
	MaxPasses    int
	EmptyTableau string

	// TracesExport is stdout or none.
	TracesExport string
	TracePretty  bool
	// TraceSampleRatio applies outside development, where every trace is kept.
	TraceSampleRatio float64
}

func (c Config) IsDev() bool { return c.AppEnv == "development" }

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:         os.Getenv("BACKEND_ADDR"),
		AppEnv:       strings.TrimSpace(os.Getenv("APP_ENV")),
		MaxTables:    1000,
		EmptyTableau: "king",

		TraceSampleRatio: 1,
		TracesExport: strings.TrimSpace(os.Getenv("OTEL_TRACES_EXPORTER")),
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.TracesExport == "" {
		cfg.TracesExport = "stdout"
	}
	if cfg.TracesExport == "noop" {
		cfg.TracesExport = "none"
	}

	if v := os.Getenv("WS_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, p)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("DEV_WEBSOCKETS_ALLOW_ALL")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevWebSocketsAllowAll = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("TRACE_PRETTY")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TracePretty = b
		}
	}

	var missing []string
	if v := strings.TrimSpace(os.Getenv("MAX_TABLES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTables = n
		} else {
			missing = append(missing, "MAX_TABLES")
		}
	}
	if v := strings.TrimSpace(os.Getenv("MAX_PASSES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxPasses = n
		} else {
			missing = append(missing, "MAX_PASSES")
		}
	}
	if v := strings.TrimSpace(os.Getenv("EMPTY_TABLEAU")); v != "" {
		switch v {
		case "king", "any":
			cfg.EmptyTableau = v
		default:
			missing = append(missing, "EMPTY_TABLEAU")
		}
	}

	if cfg.TracesExport != "stdout" && cfg.TracesExport != "none" {
		missing = append(missing, "OTEL_TRACES_EXPORTER")
	}
	if v := strings.TrimSpace(os.Getenv("TRACE_SAMPLE_RATIO")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.TraceSampleRatio = f
		} else {
			missing = append(missing, "TRACE_SAMPLE_RATIO")
		}
	}

	// BACKEND_ADDR is optional if PORT is set by the hosting environment.
	if cfg.Addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			// If PORT is a bare port, accept ":<port>". If it already includes host, keep it.
			if strings.Contains(port, ":") {
				cfg.Addr = port
			} else {
				cfg.Addr = ":" + port
			}
		}
	}
	if cfg.Addr == "" {
		missing = append(missing, "BACKEND_ADDR (or PORT)")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing/invalid env: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
