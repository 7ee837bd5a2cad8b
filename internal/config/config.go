package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"GoldLens/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Provider      ProviderConfig      `mapstructure:"provider"`
	Calendar      CalendarConfig      `mapstructure:"calendar"`
	Sampling      SamplingConfig      `mapstructure:"sampling"`
	Retrieval     RetrievalConfig     `mapstructure:"retrieval"`
	Universe      UniverseConfig      `mapstructure:"universe"`
	Normalization NormalizationConfig `mapstructure:"normalization"`
	Output        OutputConfig        `mapstructure:"output"`
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
	Telegram      TelegramConfig      `mapstructure:"telegram"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// ProviderConfig configures the Yahoo chart client.
type ProviderConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Proxy             string        `mapstructure:"proxy"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// CalendarConfig names the instrument whose history defines trading days.
type CalendarConfig struct {
	ReferenceSymbol string `mapstructure:"reference_symbol"`
}

// SamplingConfig holds the timeframe windows.
type SamplingConfig struct {
	TargetPoints int               `mapstructure:"target_points"`
	Timeframes   []model.Timeframe `mapstructure:"timeframes"`
}

// RetrievalConfig bounds chunked downloads.
type RetrievalConfig struct {
	ChunkSize   int `mapstructure:"chunk_size"`
	Concurrency int `mapstructure:"concurrency"`
}

// UniverseConfig locates the universe definition and the S&P 500 source.
type UniverseConfig struct {
	File         string `mapstructure:"file"`
	SP500URL     string `mapstructure:"sp500_url"`
	IncludeSP500 bool   `mapstructure:"include_sp500"`
}

// NormalizationConfig drives the gold-normalized artifact.
type NormalizationConfig struct {
	ReferenceAsset  string `mapstructure:"reference_asset"`
	HistoryRange    string `mapstructure:"history_range"`
	HistoryInterval string `mapstructure:"history_interval"`
	TailRange       string `mapstructure:"tail_range"`
	TailInterval    string `mapstructure:"tail_interval"`
}

// OutputConfig controls artifact location and formats.
type OutputConfig struct {
	Dir           string   `mapstructure:"dir"`
	Formats       []string `mapstructure:"formats"`
	FastTimeframe string   `mapstructure:"fast_timeframe"`
	FastAssets    []string `mapstructure:"fast_assets"`
}

// ScheduleConfig enables repeated runs. An empty Cron means run once.
type ScheduleConfig struct {
	Cron string `mapstructure:"cron"`
}

// TelegramConfig holds the optional run-summary notifier settings.
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GOLDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Conventional variables shared with other tools.
	if e := os.Getenv("HTTPS_PROXY"); e != "" && cfg.Provider.Proxy == "" {
		cfg.Provider.Proxy = e
	}
	if e := os.Getenv("TELEGRAM_BOT_TOKEN"); e != "" {
		cfg.Telegram.BotToken = e
	}
	if e := os.Getenv("TELEGRAM_CHAT_ID"); e != "" {
		cfg.Telegram.ChatID = e
	}

	if len(cfg.Sampling.Timeframes) == 0 {
		cfg.Sampling.Timeframes = model.DefaultTimeframes()
	}
	for i := range cfg.Sampling.Timeframes {
		if cfg.Sampling.Timeframes[i].TargetPoints == 0 {
			cfg.Sampling.Timeframes[i].TargetPoints = cfg.Sampling.TargetPoints
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("provider.requests_per_second", 4.0)
	v.SetDefault("provider.proxy", "")
	v.SetDefault("provider.user_agent", "Mozilla/5.0")

	v.SetDefault("calendar.reference_symbol", "^GSPC")

	v.SetDefault("sampling.target_points", model.DefaultTargetPoints)

	v.SetDefault("retrieval.chunk_size", 100)
	v.SetDefault("retrieval.concurrency", 4)

	v.SetDefault("universe.file", "configs/universe.yaml")
	v.SetDefault("universe.sp500_url", "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies")
	v.SetDefault("universe.include_sp500", true)

	v.SetDefault("normalization.reference_asset", "Gold")
	v.SetDefault("normalization.history_range", "10y")
	v.SetDefault("normalization.history_interval", "1wk")
	v.SetDefault("normalization.tail_range", "5d")
	v.SetDefault("normalization.tail_interval", "1d")

	v.SetDefault("output.dir", "public")
	v.SetDefault("output.formats", []string{"json", "csv"})
	v.SetDefault("output.fast_timeframe", "1y")
	v.SetDefault("output.fast_assets", []string{"Gold", "VOO"})

	v.SetDefault("schedule.cron", "")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")

	v.SetDefault("logging.level", "info")
}
