// Package config loads daemon settings from ~/.codelearn/config.yaml and
// the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Load reads the local config file, then applies environment overrides
// and validates the result.
func Load() (*LocalConfig, error) {
	cfg, err := LoadLocalConfig()
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with CODELEARN_* and OTEL_* variables
func ApplyEnv(cfg *LocalConfig) {
	cfg.Daemon.Port = getEnvInt("CODELEARN_PORT", cfg.Daemon.Port)
	cfg.Daemon.Bind = getEnv("CODELEARN_BIND", cfg.Daemon.Bind)
	cfg.Daemon.LogLevel = getEnv("CODELEARN_LOG_LEVEL", cfg.Daemon.LogLevel)
	cfg.Editor.RunDelayMS = getEnvInt("CODELEARN_RUN_DELAY_MS", cfg.Editor.RunDelayMS)
	cfg.Storage.Driver = getEnv("CODELEARN_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Path = getEnv("CODELEARN_STORAGE_PATH", cfg.Storage.Path)
	cfg.Telemetry.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
	cfg.Telemetry.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)

	// Setting a broker URL implies the amqp backend
	if url := getEnv("CODELEARN_AMQP_URL", ""); url != "" {
		cfg.Notify.AMQPURL = url
		cfg.Notify.Backend = NotifyAMQP
	}
	if getEnvBool("CODELEARN_DEBUG", false) {
		cfg.Daemon.LogLevel = "debug"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
