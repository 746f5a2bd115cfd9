package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Addr        string `mapstructure:"addr"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisAddr   string `mapstructure:"redis_addr"`
	JWTSecret   string `mapstructure:"jwt_secret"`

	// ExpiryWindowDays controls how far ahead the expiry notifications
	// look; ExpiryCardDays controls the dashboard's "expiring soon" card.
	ExpiryWindowDays int `mapstructure:"expiry_window_days"`
	ExpiryCardDays   int `mapstructure:"expiry_card_days"`

	HighSellingThreshold int `mapstructure:"high_selling_threshold"`

	AlertFrom        string `mapstructure:"alert_from"`
	AlertTo          string `mapstructure:"alert_to"`
	SMTPServer       string `mapstructure:"smtp_server"`
	SMTPPort         string `mapstructure:"smtp_port"`
	SMTPUser         string `mapstructure:"smtp_user"`
	SMTPPassword     string `mapstructure:"smtp_pass"`
	SMTPAuthDisabled bool   `mapstructure:"smtp_auth_disabled"`
}

// Load reads config.yaml from the working directory when present and lets
// environment variables (DATABASE_URL, REDIS_ADDR, ...) override it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("addr", ":8080")
	v.SetDefault("redis_addr", "pos-redis:6379")
	v.SetDefault("jwt_secret", "super-secret-key")
	v.SetDefault("expiry_window_days", 10)
	v.SetDefault("expiry_card_days", 3)
	v.SetDefault("high_selling_threshold", 20)
	v.SetDefault("smtp_port", "587")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
