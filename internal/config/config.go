package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mgpai22/subkit/internal/logging"
	"github.com/mgpai22/subkit/internal/styling"
	"github.com/mgpai22/subkit/internal/subtitle"
)

const envPrefix = "SUBKIT"

type Config struct {
	Log   logging.Config `mapstructure:"log"`
	Parse ParseConfig    `mapstructure:"parse"`
	Batch BatchConfig    `mapstructure:"batch"`
	Style StyleConfig    `mapstructure:"style"`
}

type ParseConfig struct {
	OnMalformedColor    string `mapstructure:"on_malformed_color"`    // default or error
	OnMalformedTimecode string `mapstructure:"on_malformed_timecode"` // skip or error
}

type BatchConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Overwrite   bool   `mapstructure:"overwrite"`
	OutputDir   string `mapstructure:"output_dir"`
}

type StyleConfig struct {
	PresetsFile string         `mapstructure:"presets_file"`
	CJK         styling.TagSet `mapstructure:"cjk"`
	Latin       styling.TagSet `mapstructure:"latin"`
}

// Load reads configuration from path, or from subkit.{yaml,toml,json} in the
// working directory or the user config directory when path is empty. A
// missing default file is not an error. SUBKIT_* environment variables
// override file values, e.g. SUBKIT_BATCH_CONCURRENCY.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	} else {
		v.SetConfigName("subkit")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "subkit"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults alone always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	log := logging.DefaultConfig()
	v.SetDefault("log.level", log.Level)
	v.SetDefault("log.format", log.Format)
	v.SetDefault("log.output", log.Output)
	v.SetDefault("log.file", log.File)
	v.SetDefault("log.max_size", log.MaxSize)
	v.SetDefault("log.max_backups", log.MaxBackups)
	v.SetDefault("log.max_age", log.MaxAge)
	v.SetDefault("log.compress", log.Compress)

	v.SetDefault("parse.on_malformed_color", string(subtitle.ColorUseDefault))
	v.SetDefault("parse.on_malformed_timecode", string(subtitle.TimecodeSkip))

	v.SetDefault("batch.concurrency", 1)
	v.SetDefault("batch.overwrite", false)
	v.SetDefault("batch.output_dir", "")

	v.SetDefault("style.presets_file", "")
	for _, class := range []string{"cjk", "latin"} {
		v.SetDefault("style."+class+".font_name", "")
		v.SetDefault("style."+class+".font_size", 0.0)
		v.SetDefault("style."+class+".color", "")
	}
}

func (c *Config) ParseOptions() subtitle.Options {
	return subtitle.Options{
		OnMalformedColor:    subtitle.ColorPolicy(c.Parse.OnMalformedColor),
		OnMalformedTimecode: subtitle.TimecodePolicy(c.Parse.OnMalformedTimecode),
	}
}

func (c *Config) ScriptTags() styling.ScriptTags {
	return styling.ScriptTags{CJK: c.Style.CJK, Latin: c.Style.Latin}
}

func (c *Config) Validate() error {
	if err := c.ParseOptions().Validate(); err != nil {
		return err
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	if err := c.ScriptTags().Validate(); err != nil {
		return err
	}
	return nil
}
