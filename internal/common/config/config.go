package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrConfigNotFound    = errors.New("config file does not exist")
	ErrInvalidConfig     = errors.New("config file is invalid")
	ErrHomeNotResolvable = errors.New("cannot resolve user home directory")
)

const (
	// OutputFileName is the JSON snapshot written to the user's home directory
	OutputFileName = ".winget-monitor"
	// LogFileName is the run log appended in the user's home directory
	LogFileName = ".winget-monitor.log"
	// DefaultCommand is the upgrade listing passed to the shell
	DefaultCommand = "winget upgrade --accept-source-agreements --accept-package-agreements"
)

// DefaultShell is the argv prefix used to run Command
var DefaultShell = []string{"powershell.exe", "-Command"}

// Config holds the optional overrides. Zero values mean "use the default".
type Config struct {
	Output  string   `yaml:"output" toml:"output"`
	Log     string   `yaml:"log" toml:"log"`
	Shell   []string `yaml:"shell,omitempty" toml:"shell,omitempty"`
	Command string   `yaml:"command" toml:"command"`
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/winget-monitor/config.yaml (XDG standard - priority)
// 2. ~/.winget-monitor.toml
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "winget-monitor", "config.yaml"),
		filepath.Join(home, ".winget-monitor.toml"),
	}, nil
}

// Load reads the first config file found on the search path.
// Without any config file the defaults are returned; nothing is created on disk.
func Load() (*Config, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		cfg, err := LoadFrom(path)
		if errors.Is(err, ErrConfigNotFound) {
			continue
		}
		return cfg, err
	}

	return &Config{}, nil
}

// LoadFrom reads configuration from a specific file path.
// Files ending in .toml are decoded as TOML, anything else as YAML.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}

	return &cfg, nil
}

// OutputPath returns the snapshot path, defaulting to ~/.winget-monitor
func (c *Config) OutputPath() (string, error) {
	return resolvePath(c.Output, OutputFileName)
}

// LogPath returns the run log path, defaulting to ~/.winget-monitor.log
func (c *Config) LogPath() (string, error) {
	return resolvePath(c.Log, LogFileName)
}

// ShellArgs returns the argv prefix for the shell
func (c *Config) ShellArgs() []string {
	if len(c.Shell) == 0 {
		return append([]string(nil), DefaultShell...)
	}
	return append([]string(nil), c.Shell...)
}

// CommandLine returns the upgrade listing command passed to the shell
func (c *Config) CommandLine() string {
	if strings.TrimSpace(c.Command) == "" {
		return DefaultCommand
	}
	return c.Command
}

// resolvePath expands a leading ~ or falls back to home/name
func resolvePath(path, name string) (string, error) {
	if path != "" && path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Join(ErrHomeNotResolvable, err)
	}

	if path == "" {
		return filepath.Join(home, name), nil
	}
	return filepath.Join(home, path[1:]), nil
}
