package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBDSN       string `envconfig:"DB_DSN" required:"true"`
	Environment string `envconfig:"ENV" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// Бот владельцев; пустой токен - бот не запускается
	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`

	// События бронирований; пустой URL - события не публикуются
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"shareit.bookings"`

	OTLPEndpoint  string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"."`
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(path); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}
