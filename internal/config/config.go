package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"respush/internal/common"
	"respush/internal/domain/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Webhook WebhookConfig `mapstructure:"webhook"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Push    PushConfig    `mapstructure:"push"`
	Log     LogConfig     `mapstructure:"log"`
}

// WebhookConfig holds the group robot endpoint settings.
type WebhookConfig struct {
	URL                string `mapstructure:"url" validate:"required,url"`
	TimeoutSec         int    `mapstructure:"timeout_sec" validate:"gt=0"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// CatalogConfig holds the spreadsheet location and its column names.
type CatalogConfig struct {
	Path       string `mapstructure:"path" validate:"required"`
	Sheet      string `mapstructure:"sheet"`
	TypeColumn string `mapstructure:"type_column" validate:"required"`
	NameColumn string `mapstructure:"name_column" validate:"required"`
	LinkColumn string `mapstructure:"link_column" validate:"required"`
}

// PushConfig holds sampling and pacing settings.
type PushConfig struct {
	PerType     int    `mapstructure:"per_type" validate:"gt=0"`
	IntervalSec int    `mapstructure:"interval_sec" validate:"gte=0"`
	Seed        string `mapstructure:"seed"`
}

// LogConfig holds console logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"webhook.url":                  "WECHAT_WEBHOOK",
	"webhook.timeout_sec":          "WEBHOOK_TIMEOUT",
	"webhook.insecure_skip_verify": "WEBHOOK_INSECURE_SKIP_VERIFY",
	"catalog.path":                 "EXCEL_FILE_PATH",
	"catalog.sheet":                "EXCEL_SHEET",
	"catalog.type_column":          "TARGET_COL_TYPE",
	"catalog.name_column":          "TARGET_COL_NAME",
	"catalog.link_column":          "TARGET_COL_LINK",
	"push.per_type":                "SEND_LINKS_PER_TYPE",
	"push.interval_sec":            "SEND_INTERVAL",
	"push.seed":                    "RANDOM_SEED",
	"log.level":                    "LOG_LEVEL",
	"log.format":                   "LOG_FORMAT",
}

// Load reads configuration from an optional config.yaml and environment variables.
// file names an explicit config file; when empty, config.yaml is looked up in . and ./config.
// Environment variables always win, e.g. WECHAT_WEBHOOK overrides webhook.url.
func Load(file string) (*Config, error) {
	v := viper.New()

	// Config file settings
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Load .env file if it exists
	_ = godotenv.Load()

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	// Defaults
	v.SetDefault("webhook.timeout_sec", 20)
	v.SetDefault("webhook.insecure_skip_verify", true)
	v.SetDefault("catalog.path", "共享无偿资料库.xlsx")
	v.SetDefault("catalog.sheet", "")
	v.SetDefault("catalog.type_column", "资源类型")
	v.SetDefault("catalog.name_column", "资源名称")
	v.SetDefault("catalog.link_column", "资源链接")
	v.SetDefault("push.per_type", 5)
	v.SetDefault("push.interval_sec", 2)
	v.SetDefault("push.seed", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Read config file (optional: env vars can provide everything)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, common.NewConfigError("file", err.Error())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, common.NewConfigError("", "unmarshaling config: "+err.Error())
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Webhook.URL = strings.TrimSpace(cfg.Webhook.URL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints and the seed format.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return common.NewConfigError(settingName(fe.Namespace()), describe(fe))
		}
		return common.NewConfigError("", err.Error())
	}

	if _, _, err := c.Push.SeedValue(); err != nil {
		return err
	}
	return nil
}

// SeedValue parses the optional random seed. ok is false when no seed is set;
// "" and "None" both mean unset.
func (p PushConfig) SeedValue() (seed uint64, ok bool, err error) {
	s := strings.TrimSpace(p.Seed)
	if s == "" || s == "None" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, common.NewConfigError("push.seed", fmt.Sprintf("%q is not an integer", p.Seed))
	}
	return uint64(n), true, nil
}

// Columns returns the configured header names.
func (c CatalogConfig) Columns() catalog.Columns {
	return catalog.Columns{Type: c.TypeColumn, Name: c.NameColumn, Link: c.LinkColumn}
}

// Interval returns the pause between messages.
func (p PushConfig) Interval() time.Duration {
	return time.Duration(p.IntervalSec) * time.Second
}

// Timeout returns the webhook call timeout.
func (w WebhookConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSec) * time.Second
}

// settingName turns "Config.Webhook.URL" into "webhook.url" and appends the env var name.
func settingName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	key := strings.ToLower(strings.Join(parts, "."))
	for k, env := range envBindings {
		if strings.ReplaceAll(k, "_", "") == key {
			return fmt.Sprintf("%s (%s)", k, env)
		}
	}
	return key
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
