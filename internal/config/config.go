package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type LinksConfig struct {
	FunctionDocsBase string `mapstructure:"function_docs_base"`
	BaseURL          string `mapstructure:"base_url"`
}

type MarkdownConfig struct {
	CodeLanguage   string `mapstructure:"code_language"`
	Highlight      bool   `mapstructure:"highlight"`
	HighlightStyle string `mapstructure:"highlight_style"`
}

type FunctionsConfig struct {
	File string `mapstructure:"file"`
}

type RenderConfig struct {
	Concurrency int  `mapstructure:"concurrency"`
	Cache       bool `mapstructure:"cache"`
}

type Config struct {
	Links     LinksConfig     `mapstructure:"links"`
	Markdown  MarkdownConfig  `mapstructure:"markdown"`
	Functions FunctionsConfig `mapstructure:"functions"`
	Render    RenderConfig    `mapstructure:"render"`
}

// cacheBase returns the base cache directory for seedoc.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/seedoc as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "seedoc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "seedoc")
	}
	return filepath.Join(os.TempDir(), "seedoc")
}

// DBPath returns the path to the DuckDB project index.
func DBPath() string {
	return filepath.Join(cacheBase(), "db.db")
}

// CASDir returns the path to the content-addressable render cache.
func CASDir() string {
	return filepath.Join(cacheBase(), "cas")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "seedoc"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "seedoc"))
	}

	viper.SetDefault("links.function_docs_base", "//php.net/")
	viper.SetDefault("links.base_url", "")
	viper.SetDefault("markdown.code_language", "php")
	viper.SetDefault("markdown.highlight", false)
	viper.SetDefault("markdown.highlight_style", "github")
	viper.SetDefault("functions.file", "")
	viper.SetDefault("render.concurrency", 4)
	viper.SetDefault("render.cache", true)

	viper.SetEnvPrefix("SEEDOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(config *Config) error {
	if config.Render.Concurrency <= 0 {
		config.Render.Concurrency = 1
	}
	if config.Functions.File != "" {
		path, err := expandHome(config.Functions.File)
		if err != nil {
			return fmt.Errorf("resolving functions file: %w", err)
		}
		config.Functions.File = path
	}
	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}
