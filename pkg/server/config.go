package server

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ustclug/tailr/pkg/take"
)

type AppConfig struct {
	Debug bool `mapstructure:"debug,omitempty" validate:"-"`
	// DbURL is the path of the sqlite database
	DbURL           string   `mapstructure:"db_url,omitempty" validate:"omitempty"`
	SourceConfigDir []string `mapstructure:"source_config_dir,omitempty" validate:"required,min=1"`
	LogDir          string   `mapstructure:"log_dir,omitempty" validate:"-"`
	LogLevel        string   `mapstructure:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	ListenAddr      string   `mapstructure:"listen_addr,omitempty" validate:"omitempty,hostname_port"`
	DefaultLines    string   `mapstructure:"default_lines,omitempty" validate:"omitempty"`
}

type Config struct {
	Debug           bool
	DbURL           string
	SourceConfigDir []string
	LogDir          string
	LogLevel        slog.Level
	ListenAddr      string
	DefaultLines    take.Value
}

var DefaultServerConfig = Config{
	DbURL:        "/var/lib/tailrd/data.db",
	LogDir:       "/var/log/tailrd/",
	LogLevel:     slog.LevelInfo,
	ListenAddr:   "127.0.0.1:9998",
	DefaultLines: take.MustParse("10"),
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	appCfg := new(AppConfig)
	if err := v.Unmarshal(appCfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(appCfg); err != nil {
		return nil, err
	}

	cfg := DefaultServerConfig
	cfg.Debug = appCfg.Debug
	cfg.SourceConfigDir = appCfg.SourceConfigDir
	if len(appCfg.DbURL) > 0 {
		cfg.DbURL = appCfg.DbURL
	}
	if len(appCfg.LogDir) > 0 {
		cfg.LogDir = appCfg.LogDir
	}
	if len(appCfg.ListenAddr) > 0 {
		cfg.ListenAddr = appCfg.ListenAddr
	}
	if len(appCfg.DefaultLines) > 0 {
		val, err := take.Parse(appCfg.DefaultLines)
		if err != nil {
			return nil, badLineCount(err)
		}
		cfg.DefaultLines = val
	}

	switch appCfg.LogLevel {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	case "info":
		fallthrough
	default:
		cfg.LogLevel = slog.LevelInfo
	}

	return &cfg, nil
}
