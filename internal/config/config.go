// Package config loads logexec settings from YAML files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	lxerrors "github.com/Aman-CERP/logexec/internal/errors"
	"github.com/Aman-CERP/logexec/internal/invocation"
	"github.com/Aman-CERP/logexec/internal/logging"
)

// FileName is the project configuration file looked up in the working directory.
const FileName = "logexec.yaml"

// altFileName is accepted when FileName is absent.
const altFileName = "logexec.yml"

// Config is the complete logexec configuration.
type Config struct {
	// LogFile is the requested run log path. Empty derives one.
	LogFile       string `yaml:"log_file" json:"log_file"`
	ConsoleLevel  string `yaml:"console_level" json:"console_level"`
	FileLevel     string `yaml:"file_level" json:"file_level"`
	SendToConsole bool   `yaml:"send_to_console" json:"send_to_console"`
	LoggerName    string `yaml:"logger_name" json:"logger_name"`
	// LogDir is the directory of derived run log paths.
	LogDir string      `yaml:"log_dir" json:"log_dir"`
	Trace  TraceConfig `yaml:"trace" json:"trace"`
}

// TraceConfig configures call tracing.
type TraceConfig struct {
	Level   string `yaml:"level" json:"level"`
	Message string `yaml:"message" json:"message"`
}

// fileConfig is the parse target. SendToConsole is a pointer so an explicit
// false can be told apart from an absent key.
type fileConfig struct {
	LogFile       string      `yaml:"log_file"`
	ConsoleLevel  string      `yaml:"console_level"`
	FileLevel     string      `yaml:"file_level"`
	SendToConsole *bool       `yaml:"send_to_console"`
	LoggerName    string      `yaml:"logger_name"`
	LogDir        string      `yaml:"log_dir"`
	Trace         TraceConfig `yaml:"trace"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		ConsoleLevel:  "DEBUG",
		FileLevel:     "DEBUG",
		SendToConsole: true,
		LoggerName:    logging.DefaultLoggerName,
		LogDir:        logging.DefaultLogDir,
		Trace: TraceConfig{
			Level:   "INFO",
			Message: invocation.DefaultMessage,
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file:
// $XDG_CONFIG_HOME/logexec/config.yaml, else ~/.config/logexec/config.yaml.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "logexec", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "logexec", "config.yaml")
	}
	return filepath.Join(home, ".config", "logexec", "config.yaml")
}

// Load builds the configuration in order of increasing precedence:
//  1. Defaults
//  2. User config (~/.config/logexec/config.yaml)
//  3. explicit, when set, else logexec.yaml (or .yml) in dir
//  4. Environment variables (LOGEXEC_*)
//
// A missing explicit file is an error; missing implicit files are not.
func Load(dir, explicit string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if explicit != "" {
		if !fileExists(explicit) {
			return nil, lxerrors.New(lxerrors.ErrCodeConfigNotFound, "config file not found: "+explicit, os.ErrNotExist).
				WithSuggestion("check the --config path")
		}
		if err := cfg.loadYAML(explicit); err != nil {
			return nil, err
		}
	} else if err := cfg.loadFromDir(dir); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromDir(dir string) error {
	for _, name := range []string{FileName, altFileName} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return c.loadYAML(path)
		}
	}
	return nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return lxerrors.ConfigError("failed to read config file "+path, err)
	}

	var parsed fileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return lxerrors.ConfigError("failed to parse config file "+path, err).
			WithDetail("path", path)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith copies the values set in other.
func (c *Config) mergeWith(other *fileConfig) {
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.ConsoleLevel != "" {
		c.ConsoleLevel = other.ConsoleLevel
	}
	if other.FileLevel != "" {
		c.FileLevel = other.FileLevel
	}
	if other.SendToConsole != nil {
		c.SendToConsole = *other.SendToConsole
	}
	if other.LoggerName != "" {
		c.LoggerName = other.LoggerName
	}
	if other.LogDir != "" {
		c.LogDir = other.LogDir
	}
	if other.Trace.Level != "" {
		c.Trace.Level = other.Trace.Level
	}
	if other.Trace.Message != "" {
		c.Trace.Message = other.Trace.Message
	}
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("LOGEXEC_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("LOGEXEC_CONSOLE_LEVEL"); v != "" {
		c.ConsoleLevel = v
	}
	if v := os.Getenv("LOGEXEC_FILE_LEVEL"); v != "" {
		c.FileLevel = v
	}
	if v := os.Getenv("LOGEXEC_SEND_TO_CONSOLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return lxerrors.ConfigError("LOGEXEC_SEND_TO_CONSOLE must be a boolean, got "+v, err)
		}
		c.SendToConsole = b
	}
	if v := os.Getenv("LOGEXEC_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	return nil
}

// Validate checks that every level names a known severity and that the trace
// message is a valid template.
func (c *Config) Validate() error {
	for _, f := range []struct {
		key, value string
	}{
		{"console_level", c.ConsoleLevel},
		{"file_level", c.FileLevel},
		{"trace.level", c.Trace.Level},
	} {
		if _, err := logging.ParseLevel(f.value); err != nil {
			return lxerrors.ConfigError(fmt.Sprintf("%s: invalid level %q", f.key, f.value), err).
				WithDetail("key", f.key).
				WithSuggestion("use one of DEBUG, INFO, WARNING, ERROR, CRITICAL")
		}
	}
	if _, err := invocation.ParseTemplate(c.Trace.Message); err != nil {
		return err
	}
	if c.LoggerName == "" {
		return lxerrors.ConfigError("logger_name must not be empty", nil)
	}
	return nil
}

// Options converts the configuration into initializer options.
// Call Validate first; unknown levels panic.
func (c *Config) Options() logging.Options {
	return logging.Options{
		LogFile:       c.LogFile,
		ConsoleLevel:  logging.MustParseLevel(c.ConsoleLevel),
		FileLevel:     logging.MustParseLevel(c.FileLevel),
		SendToConsole: c.SendToConsole,
	}
}

// TraceLevel returns the parsed trace level.
func (c *Config) TraceLevel() logging.Level {
	return logging.MustParseLevel(c.Trace.Level)
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, lxerrors.Wrap(lxerrors.ErrCodeInternal, fmt.Errorf("failed to marshal config: %w", err))
	}
	return data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
