package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Moneybook"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite or postgres
		Path     string `envconfig:"DB_PATH" default:"./data/moneybook.db"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"moneybook"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" default:"dev-secret"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Currency struct {
		Reporting    string        `envconfig:"REPORTING_CURRENCY" default:"CNY"`
		ProviderURL  string        `envconfig:"RATE_PROVIDER_URL" default:"https://api.exchangerate-api.com/v4/latest"`
		FetchTimeout time.Duration `envconfig:"RATE_FETCH_TIMEOUT" default:"10s"`
	}

	Mail struct {
		WebhookURL    string `envconfig:"MAIL_WEBHOOK_URL"`
		InviteBaseURL string `envconfig:"INVITE_BASE_URL" default:"http://localhost:8080"`
	}

	Log struct {
		Format string `envconfig:"LOG_FORMAT" default:"json"` // json or pretty
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
