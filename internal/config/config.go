package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	envPrefix = "LOSTBOARD"

	DefaultBaseURL        = "https://688d0bebcd9d22dda5cf49e2.mockapi.io/ap1/v1/board"
	defaultLogLevel       = "info"
	defaultSearchDebounce = 300 * time.Millisecond
	defaultServerAddr     = ":8080"
	defaultDirName        = ".lostboard"
)

type Config struct {
	Env            string        `mapstructure:"env"`
	BaseURL        string        `mapstructure:"base_url"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	Theme          string        `mapstructure:"theme"`
	Color          string        `mapstructure:"color"`
	ServerAddr     string        `mapstructure:"server_addr"`
	ServerDB       string        `mapstructure:"server_db"`
	Dir            string        `mapstructure:"dir"`
}

// Load resolves configuration from, lowest to highest precedence: defaults,
// lostboard.yaml (in . or ~/.lostboard), .env, LOSTBOARD_* environment
// variables, then any flags in fs that were set explicitly.
func Load(fs *pflag.FlagSet) (*Config, error) {
	loadDotEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, defaultDirName)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", EnvLocal)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file", filepath.Join(dir, "lostboard.log"))
	v.SetDefault("search_debounce", defaultSearchDebounce)
	v.SetDefault("theme", "classic")
	v.SetDefault("color", "auto")
	v.SetDefault("server_addr", defaultServerAddr)
	v.SetDefault("server_db", filepath.Join(dir, "board.db"))
	v.SetDefault("dir", dir)

	v.SetConfigName("lostboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// bindFlags maps kebab-case flags onto snake_case keys. Flags only win when
// the user set them, so defaults in fs never mask the environment.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKnownKey(key) || !f.Changed {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func isKnownKey(key string) bool {
	switch key {
	case "env", "base_url", "log_level", "log_file", "search_debounce",
		"theme", "color", "server_addr", "server_db", "dir":
		return true
	}
	return false
}

func loadDotEnv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			// Existing environment variables take precedence over the file.
			_ = godotenv.Load(p)
			return
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.SearchDebounce <= 0 {
		return fmt.Errorf("search_debounce must be positive, got %s", c.SearchDebounce)
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("env must be one of local, dev, prod, got %q", c.Env)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	return nil
}

func (c *Config) IsProd() bool { return c.Env == EnvProd }

func (c *Config) IsLocal() bool { return c.Env == EnvLocal || c.Env == "" }
