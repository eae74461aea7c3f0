// Package config loads runtime configuration for monitorshape.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/frudas24/monitorshape/internal/monitor"
	"github.com/frudas24/monitorshape/internal/report"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MONITORSHAPE_LISTEN_ADDR.
const EnvPrefix = "MONITORSHAPE"

const (
	defaultListenAddr        = "127.0.0.1:8790"
	defaultFormat            = monitor.FormatAuto
	defaultOutput            = report.FormatText
	defaultMaxBodyBytes      = 1 << 20
	defaultWSRatePerSec      = 20
	defaultWSBurst           = 40
	defaultShutdownTimeoutMs = 5000
	defaultConfigName        = "monitorshape"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr        string `mapstructure:"listen_addr"`
	Password          string `mapstructure:"password"`
	Format            string `mapstructure:"format"`
	Output            string `mapstructure:"output"`
	Strict            bool   `mapstructure:"strict"`
	Debug             bool   `mapstructure:"debug"`
	MaxBodyBytes      int64  `mapstructure:"max_body_bytes"`
	WSRatePerSec      int    `mapstructure:"ws_rate_per_sec"`
	WSBurst           int    `mapstructure:"ws_burst"`
	ShutdownTimeoutMs int    `mapstructure:"shutdown_timeout_ms"`
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"listen_addr": "listen",
	"password":    "password",
	"format":      "format",
	"output":      "output",
	"strict":      "strict",
	"debug":       "debug",
}

// Load reads configuration from defaults, an optional config file,
// MONITORSHAPE_* environment variables and the given flags, in increasing
// priority. An empty path looks for ./monitorshape.{yaml,json,env,...} and
// tolerates its absence; an explicit path must exist.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, path); err != nil {
		return Config{}, err
	}
	if err := bindFlags(v, flags); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", defaultListenAddr)
	v.SetDefault("password", "")
	v.SetDefault("format", defaultFormat)
	v.SetDefault("output", defaultOutput)
	v.SetDefault("strict", false)
	v.SetDefault("debug", false)
	v.SetDefault("max_body_bytes", defaultMaxBodyBytes)
	v.SetDefault("ws_rate_per_sec", defaultWSRatePerSec)
	v.SetDefault("ws_burst", defaultWSBurst)
	v.SetDefault("shutdown_timeout_ms", defaultShutdownTimeoutMs)
}

// readConfigFile merges a config file into v.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(defaultConfigName)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// bindFlags binds the flags present in fs; missing flags are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	for key, name := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// normalize validates ranges and canonicalizes enumerated values.
func (c *Config) normalize() error {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.Password = strings.TrimSpace(c.Password)

	format, err := monitor.NormalizeFormat(c.Format)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	c.Format = format

	output, err := report.ParseFormat(c.Output)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	c.Output = output

	if c.ListenAddr == "" {
		return errors.New("listen_addr must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be > 0")
	}
	if c.WSRatePerSec <= 0 {
		return errors.New("ws_rate_per_sec must be > 0")
	}
	if c.WSBurst <= 0 {
		return errors.New("ws_burst must be > 0")
	}
	if c.ShutdownTimeoutMs < 0 {
		return errors.New("shutdown_timeout_ms must be >= 0")
	}
	return nil
}
