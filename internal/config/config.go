// Package config loads hwsnap settings from an optional YAML file, HWSNAP_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config carries runtime options for hwsnap.
type Config struct {
	SettleInterval time.Duration `mapstructure:"settle_interval"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	Elevation      Elevation     `mapstructure:"elevation"`
	Parallel       bool          `mapstructure:"parallel"`
	Workers        int           `mapstructure:"workers"`
	Log            Log           `mapstructure:"log"`
	Watch          Watch         `mapstructure:"watch"`
}

// Elevation controls the privileged retry for root-only tools.
type Elevation struct {
	Enabled bool          `mapstructure:"enabled"`
	Wrapper string        `mapstructure:"wrapper"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Watch struct {
	Interval time.Duration `mapstructure:"interval"`
}

func Default() Config {
	return Config{
		SettleInterval: 200 * time.Millisecond,
		CommandTimeout: 5 * time.Second,
		Elevation: Elevation{
			Enabled: true,
			Wrapper: "pkexec",
			Timeout: 60 * time.Second,
		},
		Parallel: true,
		Workers:  8,
		Log:      Log{Level: "info", Format: "auto"},
		Watch:    Watch{Interval: 3 * time.Second},
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"settle":    "settle_interval",
	"timeout":   "command_timeout",
	"log-level": "log.level",
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Duration("settle", d.SettleInterval, "gap between the two CPU time reads")
	fs.Duration("timeout", d.CommandTimeout, "timeout for each external tool")
	fs.String("log-level", d.Log.Level, "log level: debug|info|warn|error|disabled")
	fs.Bool("no-elevate", false, "never retry root-only tools through the elevation wrapper")
	fs.Bool("sequential", false, "query sources one at a time")
}

// Load resolves the configuration. An empty path searches ./hwsnap.yaml,
// ~/.config/hwsnap and /etc/hwsnap; a missing file there is not an error.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hwsnap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hwsnap")
		v.AddConfigPath("/etc/hwsnap")
	}

	v.SetEnvPrefix("HWSNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("settle_interval", d.SettleInterval)
	v.SetDefault("command_timeout", d.CommandTimeout)
	v.SetDefault("elevation.enabled", d.Elevation.Enabled)
	v.SetDefault("elevation.wrapper", d.Elevation.Wrapper)
	v.SetDefault("elevation.timeout", d.Elevation.Timeout)
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("watch.interval", d.Watch.Interval)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	// The negative flags only ever switch things off.
	if off, err := flags.GetBool("no-elevate"); err == nil && off {
		v.Set("elevation.enabled", false)
	}
	if seq, err := flags.GetBool("sequential"); err == nil && seq {
		v.Set("parallel", false)
	}
	return nil
}

func (c *Config) normalize() error {
	d := Default()
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = d.CommandTimeout
	}
	if c.Elevation.Timeout <= 0 {
		c.Elevation.Timeout = d.Elevation.Timeout
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Watch.Interval <= 0 {
		c.Watch.Interval = d.Watch.Interval
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log.format %q: want auto, console or json", c.Log.Format)
	}
	return nil
}
