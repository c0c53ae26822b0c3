package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Telegram struct {
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Instagram struct {
		CredentialsPath string `env:"INSTAGRAM_CREDENTIALS_PATH" env-default:".env"`
		SessionPath     string `env:"INSTAGRAM_SESSION_PATH" env-default:"./goinsta-session"`
	}
	Relay struct {
		Timezone          string `env:"RELAY_TIMEZONE" env-default:"Asia/Jakarta"`
		MaxFileSizeMB     int64  `env:"RELAY_MAX_FILE_SIZE_MB" env-default:"50"`
		TempDir           string `env:"RELAY_TEMP_DIR" env-default:"/tmp"`
		ItemDelaySeconds  int    `env:"RELAY_ITEM_DELAY_SECONDS" env-default:"3"`
		SendDelaySeconds  int    `env:"RELAY_SEND_DELAY_SECONDS" env-default:"2"`
		HighlightPageSize int    `env:"RELAY_HIGHLIGHT_PAGE_SIZE" env-default:"10"`
		LogRetentionDays  int    `env:"RELAY_LOG_RETENTION_DAYS" env-default:"5"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
}

// GetDSN builds the postgres connection string in keyword form.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
