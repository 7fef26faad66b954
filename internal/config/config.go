package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBDriver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	DBDSN             string        `env:"DB_DSN,required,notEmpty"`
	DBConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"10"`
	DBRetryDelay      time.Duration `env:"DB_RETRY_DELAY" envDefault:"2s"`
	ServerPort        string        `env:"SERVER_PORT" envDefault:"8080"`
	SessionSecret     string        `env:"SESSION_SECRET,required,notEmpty"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MetricsPath       string        `env:"METRICS_PATH" envDefault:"/metrics"`
	PageSize          int           `env:"PAGE_SIZE" envDefault:"20"`
}

// Load читает .env и окружение; без обязательных ключей процесс завершается.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, errors.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}
	if cfg.PageSize <= 0 {
		return nil, errors.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if !strings.HasPrefix(cfg.MetricsPath, "/") {
		return nil, errors.Errorf("METRICS_PATH must start with /, got %q", cfg.MetricsPath)
	}
	return cfg, nil
}

func (c *Config) LogrusLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(c.LogrusLevel())
	return logger
}
