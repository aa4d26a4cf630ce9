// Package config loads the settings of a scan run from defaults, an
// optional config file, BTCSCAN_* environment variables and command line
// flags, in increasing order of precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"btcscan/internal/token"
)

// EnvPrefix prefixes the environment variables overriding a key, so
// output_dir is read from BTCSCAN_OUTPUT_DIR.
const EnvPrefix = "BTCSCAN"

// DefaultCase names the case when none is given and no prompt is possible.
const DefaultCase = "btcscan"

// ErrNoInput is returned by Load when no input path was configured.
var ErrNoInput = errors.New("no input file or directory given")

// Config holds the settings of one run.
type Config struct {
	Input      string `mapstructure:"input"`
	Quick      bool   `mapstructure:"quick"`
	Unicode    bool   `mapstructure:"unicode"`
	NonUnicode bool   `mapstructure:"nonunicode"`
	Case       string `mapstructure:"case"`
	OutputDir  string `mapstructure:"output_dir"`
	Workers    int    `mapstructure:"workers"`
	LogLevel   string `mapstructure:"log_level"`
	KeepEmpty  bool   `mapstructure:"keep_empty"`
}

// flagNames maps config keys to the flags setting them.
var flagNames = map[string]string{
	"input":      "input",
	"quick":      "quick",
	"unicode":    "unicode",
	"nonunicode": "nonunicode",
	"case":       "case",
	"output_dir": "output-dir",
	"workers":    "workers",
	"log_level":  "log-level",
	"keep_empty": "keep-empty",
}

// New returns a viper instance with defaults and environment lookup set.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("quick", false)
	v.SetDefault("unicode", false)
	v.SetDefault("nonunicode", false)
	v.SetDefault("case", "")
	v.SetDefault("output_dir", ".")
	v.SetDefault("workers", 1)
	v.SetDefault("log_level", "warning")
	v.SetDefault("keep_empty", false)
}

// BindFlags binds the flags of fs that set a config key. Flags missing
// from fs are ignored.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagNames {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// Load reads configFile, if not empty, and returns the merged settings.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.Input = CleanInput(cfg.Input)
	if cfg.Input == "" {
		return nil, ErrNoInput
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &cfg, nil
}

// CleanInput drops the trailing backslashes and then quotes that some
// Windows shells leave on a quoted directory argument.
func CleanInput(path string) string {
	path = strings.TrimRight(path, `\`)
	return strings.TrimRight(path, `"`)
}

// Mode returns the token selection of the run.
func (c *Config) Mode() token.Mode {
	return token.Mode{
		Quick:          c.Quick,
		UnicodeOnly:    c.Unicode,
		NonUnicodeOnly: c.NonUnicode,
	}
}
