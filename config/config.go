package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Session struct {
		SecretKey string        `mapstructure:"secretKey"`
		Lifetime  time.Duration `mapstructure:"lifetime"`
	} `mapstructure:"session"`
	CORS struct {
		Origins []string `mapstructure:"origins"`
	} `mapstructure:"cors"`
	Seed struct {
		AdminUsername string `mapstructure:"adminUsername"`
		AdminPassword string `mapstructure:"adminPassword"`
		DemoData      bool   `mapstructure:"demoData"`
	} `mapstructure:"seed"`
}

// IsProduction reports whether the process runs with production behavior
// (secure cookies, JSON logs, no live API probes in diagnostics).
func (c *Config) IsProduction() bool {
	return c.Mode == "production"
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Environment variables take precedence over file values. The names kept
	// by the deployment platform (DATABASE_URL, SECRET_KEY, CORS_ORIGIN,
	// APP_ENV) are bound explicitly to their config keys.
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("session.secretKey", "SECRET_KEY")
	_ = v.BindEnv("mode", "APP_ENV")
	_ = v.BindEnv("server.HTTPPort", "HTTP_PORT")
	_ = v.BindEnv("cors.extraOrigin", "CORS_ORIGIN")

	// Try to load file-based config, falling back to the embedded copy.
	err := v.ReadInConfig()
	if err != nil {
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// CORS_ORIGIN extends, never replaces, the fixed allow-list.
	if extra := v.GetString("cors.extraOrigin"); extra != "" {
		config.CORS.Origins = append(config.CORS.Origins, extra)
	}

	if config.Session.Lifetime == 0 {
		config.Session.Lifetime = time.Hour
	}
	return config, nil
}
