package config

import (
	"errors"
	"fmt"

	cfg "assistant/pkg/config"
)

type App struct {
	AppName  string       `mapstructure:"app_name"`
	HTTP     cfg.HTTP     `mapstructure:"http"`
	Storage  cfg.Storage  `mapstructure:"storage"`
	Postgres cfg.Postgres `mapstructure:"postgres"`
	Redis    cfg.Redis    `mapstructure:"redis"`
	Events   cfg.Events   `mapstructure:"events"`
	Auth     cfg.Auth     `mapstructure:"auth"`
	Metrics  cfg.Metrics  `mapstructure:"metrics"`
	Logger   cfg.Logger   `mapstructure:"logger"`
}

func (a *App) Validate() error {
	if a.AppName == "" {
		return errors.New("app_name is required")
	}
	if err := a.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := a.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	switch a.Storage.Driver {
	case "postgres":
		if err := a.Postgres.Validate(); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	case "redis":
		if err := a.Redis.Validate(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if err := a.Events.Validate(); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := a.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

func (a App) Redact() any {
	a.Postgres.Password = "***"
	a.Redis.Password = "***"
	if a.Auth.JWTSecret != "" {
		a.Auth.JWTSecret = "***"
	}
	if a.Auth.PassphraseHash != "" {
		a.Auth.PassphraseHash = "***"
	}
	return a
}

// New loads config files then ENV overrides (prefix ASSISTANT_).
func New() *App {
	c := cfg.MustLoad[App](cfg.Options{
		Paths:     []string{"./config", "./configs", "/etc/assistant"},
		Names:     []string{"defaults", "assistant", "config"},
		Type:      "yaml",
		EnvPrefix: "ASSISTANT",
		Defaults: map[string]any{
			"app_name":       "assistant",
			"http.addr":      ":8080",
			"storage.driver": "file",
			"storage.path":   "contacts.json",
		},
		OptionalFiles: true,
	})
	c.Logger.AppName = c.AppName
	return &c
}
