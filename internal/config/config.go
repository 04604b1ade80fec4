// Package config loads sr settings from ~/.secreport/config.toml and
// SECREPORT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "SECREPORT"
	ConfigDir  = ".secreport"
	configName = "config"
	configType = "toml"
)

type Config struct {
	Backend   BackendConfig   `mapstructure:"backend"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Translate TranslateConfig `mapstructure:"translate"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	State     StateConfig     `mapstructure:"state"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Log       LogConfig       `mapstructure:"log"`
}

type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type TranslateConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type SpeechConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	VoiceID      string `mapstructure:"voice_id"`
	OutputFormat string `mapstructure:"output_format"`
}

type StateConfig struct {
	Path string `mapstructure:"path"`
}

type SecretsConfig struct {
	Dir        string `mapstructure:"dir"`
	PassPrefix string `mapstructure:"pass_prefix"`
}

type AudioConfig struct {
	Dir    string `mapstructure:"dir"`
	Player string `mapstructure:"player"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with every key defaulted and env overrides
// bound. home is the directory holding .secreport.
func New(home string) *viper.Viper {
	dir := filepath.Join(home, ConfigDir)

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend.base_url", "http://localhost:8080")
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("translate.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("translate.api_key", "")
	v.SetDefault("translate.model", "gemini-2.0-flash")
	v.SetDefault("speech.base_url", "https://api.upliftai.org")
	v.SetDefault("speech.api_key", "")
	v.SetDefault("speech.voice_id", "v_8eelc901")
	v.SetDefault("speech.output_format", "MP3_22050_128")
	v.SetDefault("state.path", filepath.Join(dir, "state.toml"))
	v.SetDefault("secrets.dir", filepath.Join(dir, "secrets"))
	v.SetDefault("secrets.pass_prefix", "secreport")
	v.SetDefault("audio.dir", filepath.Join(os.TempDir(), "secreport-audio"))
	v.SetDefault("audio.player", "mpv --no-video --really-quiet")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	return v
}

// Load reads the optional config file and decodes v into a validated Config.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	for key, raw := range map[string]string{
		"backend.base_url":   c.Backend.BaseURL,
		"translate.base_url": c.Translate.BaseURL,
		"speech.base_url":    c.Speech.BaseURL,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if c.HTTP.Timeout <= 0 {
		return errors.New("invalid http.timeout: must be positive")
	}
	if strings.TrimSpace(c.State.Path) == "" {
		return errors.New("invalid state.path: must not be empty")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log.format %q: want text, json or logfmt", c.Log.Format)
	}

	return nil
}

func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("must not be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("missing host")
	}

	return nil
}
