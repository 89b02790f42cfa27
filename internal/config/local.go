package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LocalConfig holds configuration for local daemon mode
type LocalConfig struct {
	Daemon    DaemonConfig    `yaml:"daemon" json:"daemon"`
	Editor    EditorConfig    `yaml:"editor" json:"editor"`
	Content   ContentConfig   `yaml:"content" json:"content"`
	Storage   StorageConfig   `yaml:"storage" json:"storage"`
	Notify    NotifyConfig    `yaml:"notify" json:"notify"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// DaemonConfig holds daemon server settings
type DaemonConfig struct {
	Port     int    `yaml:"port" json:"port"`
	Bind     string `yaml:"bind" json:"bind"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// EditorConfig holds workbench editor settings
type EditorConfig struct {
	Language     string `yaml:"language" json:"language"`
	RunDelayMS   int    `yaml:"run_delay_ms" json:"run_delay_ms"`
	LineHeight   int    `yaml:"line_height" json:"line_height"`
	MarkerOffset int    `yaml:"marker_offset" json:"marker_offset"`
	InitialCode  string `yaml:"initial_code,omitempty" json:"initial_code,omitempty"`
	TutorialID   string `yaml:"tutorial_id,omitempty" json:"tutorial_id,omitempty"`
}

// RunDelay returns the simulated run duration
func (e EditorConfig) RunDelay() time.Duration {
	return time.Duration(e.RunDelayMS) * time.Millisecond
}

// ContentConfig points at fixture directories. Empty paths use the
// embedded fixtures.
type ContentConfig struct {
	ExercisesPath string `yaml:"exercises_path" json:"exercises_path"`
	TutorialsPath string `yaml:"tutorials_path" json:"tutorials_path"`
}

// Storage drivers
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// StorageConfig selects where sessions and activity live
type StorageConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Notify backends
const (
	NotifyLog  = "log"
	NotifyAMQP = "amqp"
)

// NotifyConfig selects the run notifier
type NotifyConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	AMQPURL string `yaml:"amqp_url,omitempty" json:"-"`
}

// TelemetryConfig holds OpenTelemetry export settings. An empty endpoint
// disables export.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty" json:"otlp_endpoint,omitempty"`
	ServiceName  string `yaml:"service_name" json:"service_name"`
}

// Dir returns the path to ~/.codelearn, or $CODELEARN_HOME when set
func Dir() (string, error) {
	if dir := os.Getenv("CODELEARN_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".codelearn"), nil
}

// EnsureDir creates the config directory and its subdirectories
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	for _, subdir := range []string{"", "logs", "data"} {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}
	return dir, nil
}

// DefaultLocalConfig returns the defaults for local mode
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Daemon: DaemonConfig{
			Port:     7433,
			Bind:     "127.0.0.1",
			LogLevel: "info",
		},
		Editor: EditorConfig{
			Language:     "javascript",
			RunDelayMS:   1000,
			LineHeight:   24,
			MarkerOffset: 16,
			TutorialID:   "javascript-functions",
		},
		Storage: StorageConfig{
			Driver: StorageMemory,
		},
		Notify: NotifyConfig{
			Backend: NotifyLog,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "codelearnd",
		},
	}
}

// Validate rejects settings the daemon cannot start with
func (c *LocalConfig) Validate() error {
	var errs []error
	if c.Daemon.Port <= 0 || c.Daemon.Port > 65535 {
		errs = append(errs, fmt.Errorf("daemon.port %d out of range", c.Daemon.Port))
	}
	switch c.Daemon.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("daemon.log_level %q: want debug, info, warn or error", c.Daemon.LogLevel))
	}
	if c.Editor.RunDelayMS < 0 {
		errs = append(errs, fmt.Errorf("editor.run_delay_ms must not be negative"))
	}
	if c.Editor.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("editor.line_height must be positive"))
	}
	switch c.Storage.Driver {
	case StorageMemory, StorageFile, StorageSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q: want memory, file or sqlite", c.Storage.Driver))
	}
	switch c.Notify.Backend {
	case NotifyLog:
	case NotifyAMQP:
		if c.Notify.AMQPURL == "" {
			errs = append(errs, fmt.Errorf("notify.amqp_url is required for the amqp backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("notify.backend %q: want log or amqp", c.Notify.Backend))
	}
	return errors.Join(errs...)
}

// ConfigPath returns the path of config.yaml
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadLocalConfig loads ~/.codelearn/config.yaml over the defaults
func LoadLocalConfig() (*LocalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadLocalConfigFrom(path)
}

// LoadLocalConfigFrom loads path over the defaults. A missing file yields
// the defaults.
func LoadLocalConfigFrom(path string) (*LocalConfig, error) {
	cfg := DefaultLocalConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveLocalConfig saves configuration to ~/.codelearn/config.yaml
func SaveLocalConfig(cfg *LocalConfig) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// The AMQP URL may carry credentials
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
