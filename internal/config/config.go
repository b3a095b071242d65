package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dmdmdm-nz/usbnetd/internal/netmon"
)

// Config represents the complete usbnetd configuration.
type Config struct {
	Module ModuleConfig `toml:"module"`
	Store  StoreConfig  `toml:"store"`
	API    APIConfig    `toml:"api"`
	Log    LogConfig    `toml:"log"`
}

// ModuleConfig names the technology and interface the module governs.
type ModuleConfig struct {
	NetworkType string        `toml:"network_type"`
	Interface   string        `toml:"interface"`
	Probe       netmon.Method `toml:"probe"`
}

// StoreConfig locates the connection profile store.
type StoreConfig struct {
	Path string `toml:"path"`
	Root string `toml:"root"`
}

type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultPath returns the config file path: $XDG_CONFIG_HOME/usbnetd when
// set, /etc/usbnetd otherwise.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "usbnetd", "config.toml")
	}
	return filepath.Join("/etc", "usbnetd", "config.toml")
}

// Default returns a configuration with every optional field defaulted and
// no profile store.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a config file from the given path.
// If path is empty, it uses DefaultPath. A missing default file is not an
// error; the defaults apply.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Module.NetworkType == "" {
		cfg.Module.NetworkType = DefaultNetworkType
	}
	if cfg.Module.Interface == "" {
		cfg.Module.Interface = DefaultInterface
	}
	if cfg.Module.Probe == "" {
		cfg.Module.Probe = DefaultProbe
	}
	if cfg.Store.Root == "" {
		cfg.Store.Root = DefaultStoreRoot
	}
	if cfg.API.Host == "" {
		cfg.API.Host = DefaultHost
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = DefaultPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// validate checks field values after defaults are applied.
func validate(cfg *Config) error {
	var errs []error

	switch cfg.Module.Probe {
	case netmon.MethodIoctl, netmon.MethodNetlink, netmon.MethodStdlib:
	default:
		errs = append(errs, fmt.Errorf("module.probe %q is not one of ioctl, netlink, stdlib", cfg.Module.Probe))
	}
	if cfg.Store.Root[0] != '/' {
		errs = append(errs, fmt.Errorf("store.root %q must be an absolute path", cfg.Store.Root))
	}
	if cfg.API.Port < 1 || cfg.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api.port %d is out of range", cfg.API.Port))
	}
	switch cfg.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error", cfg.Log.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Type: %s, Interface: %s, Probe: %s, Store: %s (%s), API: %s:%d, LogLevel: %s",
		c.Module.NetworkType, c.Module.Interface, c.Module.Probe, c.Store.Path, c.Store.Root,
		c.API.Host, c.API.Port, c.Log.Level)
}
