package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
}

type App struct {
	Name            string `env:"APP_NAME" envDefault:"pos_catalog"`
	Version         string `env:"APP_VERSION" envDefault:"dev"`
	PublicURL       string `env:"APP_PUBLIC_URL" envDefault:"http://localhost:8080"`
	DefaultCurrency string `env:"APP_DEFAULT_CURRENCY" envDefault:"USD"`
	SalesWindowDays int    `env:"APP_SALES_WINDOW_DAYS" envDefault:"7"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
