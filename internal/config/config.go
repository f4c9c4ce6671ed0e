package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultLanguageCode = "en"

var ErrMissingAPIKey = errors.New("gemini api key is not set")

type Config struct {
	Gemini   Gemini   `yaml:"gemini"`
	Poller   Poller   `yaml:"poller"`
	Web      Web      `yaml:"web"`
	Telegram Telegram `yaml:"telegram"`
	Logger   Logger   `yaml:"logger"`
}

type Gemini struct {
	APIKey  string        `env:"GEMINI_API_KEY,API_KEY" env-required:"true" yaml:"api-key"`
	BaseURL string        `env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com" yaml:"base-url"`
	Model   string        `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash" yaml:"model"`
	Timeout time.Duration `env:"GEMINI_TIMEOUT" env-default:"1m" yaml:"timeout"`
}

type Poller struct {
	Interval      time.Duration `env:"POLLER_INTERVAL" env-default:"5s" yaml:"interval"`
	DefaultLocale string        `env:"POLLER_DEFAULT_LOCALE" env-default:"en-US" yaml:"default-locale"`
}

type Web struct {
	Address      string  `env:"WEB_ADDRESS" env-default:":8080" yaml:"address"`
	RefreshRate  float64 `env:"WEB_REFRESH_RATE" env-default:"0.5" yaml:"refresh-rate"` // manual refreshes per second
	RefreshBurst int     `env:"WEB_REFRESH_BURST" env-default:"3" yaml:"refresh-burst"`
}

type Telegram struct {
	Token string `env:"TELEGRAM_TOKEN" env-default:"" yaml:"token"`
}

// Enabled reports whether the bot should be started.
func (t *Telegram) Enabled() bool {
	return t.Token != ""
}

type Logger struct {
	Level           string     `env:"LOG_LEVEL" env-default:"info" yaml:"level"`
	ParsedSlogLevel slog.Level `yaml:"-"`
}

// Load reads config from a YAML file when it exists and from the environment.
// Environment variables take precedence over the file.
func Load(configPath string) (*Config, error) {
	cnf := &Config{}

	var err error
	if _, statErr := os.Stat(configPath); statErr == nil {
		err = cleanenv.ReadConfig(configPath, cnf)
	} else {
		err = cleanenv.ReadEnv(cnf)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if cnf.Gemini.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if cnf.Poller.Interval <= 0 {
		return nil, fmt.Errorf("poller interval must be positive, got %s", cnf.Poller.Interval)
	}

	cnf.Logger.ParsedSlogLevel = parseLevel(cnf.Logger.Level)

	return cnf, nil
}

// MustLoad loads config and panics when the configuration is unusable.
func MustLoad(configPath string) *Config {
	cnf, err := Load(configPath)
	if err != nil {
		panic(fmt.Errorf("cannot read config: %w", err))
	}

	return cnf
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
