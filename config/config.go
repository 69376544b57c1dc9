package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "pms"

// Duration is a time.Duration that reads from strings such as "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds everything read from the configuration file.
type Config struct {
	Host     string   `toml:"host"`
	Port     int      `toml:"port"`
	Password string   `toml:"password"`
	Timeout  Duration `toml:"timeout"`

	ConsoleLines int    `toml:"console_lines"`
	ScrollMode   string `toml:"scroll_mode"`
	ListLimit    int    `toml:"list_limit"`

	LogFile string `toml:"log_file"`
	Debug   bool   `toml:"debug"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Host:         "localhost",
		Port:         6600,
		Timeout:      Duration{10 * time.Second},
		ConsoleLines: 1024,
		ScrollMode:   "normal",
		LogFile:      filepath.Join(dataDir(), "logs", appName+".log"),
	}
}

// DefaultPath returns where the configuration file is looked up.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName, appName+".toml")
	}
	return appName + ".toml"
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", appName)
	}
	return "."
}

// Load reads the configuration at path over the defaults, then applies the
// MPD_HOST and MPD_PORT environment variables. A missing file is not an
// error. The result is not validated, so that callers can apply their own
// overrides first.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if host := os.Getenv("MPD_HOST"); host != "" {
		c.Host = host
	}
	if port := os.Getenv("MPD_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("MPD_PORT: %w", err)
		}
		c.Port = p
	}
	return nil
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	switch {
	case c.Host == "":
		return errors.New("host is empty")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("port %d out of range", c.Port)
	case c.Timeout.Duration <= 0:
		return fmt.Errorf("timeout %s must be positive", c.Timeout)
	case c.ConsoleLines <= 0:
		return fmt.Errorf("console_lines %d must be positive", c.ConsoleLines)
	case c.ListLimit < 0:
		return fmt.Errorf("list_limit %d must not be negative", c.ListLimit)
	case c.ScrollMode != "normal" && c.ScrollMode != "centered":
		return fmt.Errorf("unknown scroll_mode %q", c.ScrollMode)
	}
	return nil
}

// Address returns host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
