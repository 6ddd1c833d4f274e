package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/s7layout/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatWIT  = "wit"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Log encodings.
const (
	LogConsole = "console"
	LogJSON    = "json"
)

// Config is the resolved command configuration.
type Config struct {
	Format     string   `toml:"format"`
	Query      string   `toml:"query"`
	Types      []string `toml:"types"`
	Color      string   `toml:"color"`
	LogLevel   string   `toml:"log_level"`
	LogFormat  string   `toml:"log_format"`
	WITPackage string   `toml:"wit_package"`
	Strict     bool     `toml:"strict"`
	// Address adds the S7 absolute address column to text output.
	Address bool `toml:"address"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:     FormatText,
		Color:      ColorAuto,
		LogLevel:   "warn",
		LogFormat:  LogConsole,
		WITPackage: "s7:layout",
	}
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidConfig, err,
			fmt.Sprintf("decode %s", path))
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Detail("unknown keys in %s: %s", path, strings.Join(keys, ", ")).
			Build()
	}

	dir := filepath.Dir(path)
	for i, t := range cfg.Types {
		if !filepath.IsAbs(t) {
			cfg.Types[i] = filepath.Join(dir, t)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML, FormatWIT:
	default:
		return invalid("format", c.Format)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid("color", c.Color)
	}
	switch c.LogFormat {
	case LogConsole, LogJSON:
	default:
		return invalid("log_format", c.LogFormat)
	}
	if _, err := c.Level(); err != nil {
		return invalid("log_level", c.LogLevel)
	}
	if ns, name, ok := strings.Cut(c.WITPackage, ":"); !ok || ns == "" || name == "" {
		return invalid("wit_package", c.WITPackage)
	}
	if c.Query != "" && c.Format == FormatWIT {
		return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Detail("query applies to the report document and cannot be combined with the wit format").
			Build()
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

func invalid(key, value string) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
		Detail("invalid %s %q", key, value).
		Build()
}
