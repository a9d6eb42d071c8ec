package tailr

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ustclug/tailr/pkg/tail"
	"github.com/ustclug/tailr/pkg/take"
)

const (
	envPrefix    = "TAILR"
	defaultLines = "10"
)

// AppConfig holds the raw, unparsed settings of one invocation.
type AppConfig struct {
	Files      []string `mapstructure:"files" validate:"required,min=1,dive,required"`
	Lines      string   `mapstructure:"lines" validate:"-"`
	Bytes      string   `mapstructure:"bytes" validate:"-"`
	Quiet      bool     `mapstructure:"quiet" validate:"-"`
	Decompress bool     `mapstructure:"decompress" validate:"-"`
	Color      string   `mapstructure:"color" validate:"omitempty,oneof=auto always never"`
	LogLevel   string   `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

type Config struct {
	Files      []string
	Unit       tail.Unit
	Take       take.Value
	Quiet      bool
	Decompress bool
	// Color is one of auto, always or never and applies to headers.
	Color    string
	LogLevel slog.Level
}

// BindFlags registers the flags of tailr and binds them, together with
// TAILR_* environment variables, to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.StringP("lines", "n", defaultLines, "Number of lines")
	flags.StringP("bytes", "c", "", "Number of bytes")
	flags.BoolP("quiet", "q", false, "Suppress headers")
	flags.BoolP("decompress", "z", false, "Decompress sources ending in .gz")
	flags.String("color", "auto", "Colorize headers: auto, always or never")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, name := range map[string]string{
		"lines":      "lines",
		"bytes":      "bytes",
		"quiet":      "quiet",
		"decompress": "decompress",
		"color":      "color",
		"log_level":  "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig reads the settings bound to v and parses the take
// specifications. A bad specification is returned as a *take.SpecError
// wrapped with a message naming the unit.
func LoadConfig(v *viper.Viper, files []string) (*Config, error) {
	appCfg := new(AppConfig)
	if err := v.Unmarshal(appCfg); err != nil {
		return nil, err
	}
	appCfg.Files = files
	if err := validator.New().Struct(appCfg); err != nil {
		return nil, err
	}

	cfg := Config{
		Files:      appCfg.Files,
		Unit:       tail.Lines,
		Quiet:      appCfg.Quiet,
		Decompress: appCfg.Decompress,
		Color:      appCfg.Color,
	}
	// An explicitly empty spec is still a spec, and an invalid one.
	if v.IsSet("bytes") {
		val, err := take.Parse(appCfg.Bytes)
		if err != nil {
			return nil, fmt.Errorf("illegal byte count -- %w", err)
		}
		cfg.Unit = tail.Bytes
		cfg.Take = val
	} else {
		val, err := take.Parse(appCfg.Lines)
		if err != nil {
			return nil, fmt.Errorf("illegal line count -- %w", err)
		}
		cfg.Take = val
	}

	switch appCfg.LogLevel {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "error":
		cfg.LogLevel = slog.LevelError
	case "warn":
		fallthrough
	default:
		cfg.LogLevel = slog.LevelWarn
	}
	return &cfg, nil
}
