package config

import (
	"errors"
	"fmt"
	"time"
)

type HTTP struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

func (h *HTTP) Validate() error {
	if h == nil {
		return errors.New("http config is nil")
	}
	if h.Addr == "" {
		return errors.New("http.addr is required")
	}
	return nil
}

// Storage selects the contacts blob-store backend.
type Storage struct {
	Driver string `mapstructure:"driver"` // file | redis | postgres
	Path   string `mapstructure:"path"`   // file driver: path to the contacts document
}

func (s *Storage) Validate() error {
	if s == nil {
		return errors.New("storage config is nil")
	}
	switch s.Driver {
	case "", "file":
		if s.Path == "" {
			return errors.New("storage.path is required for the file driver")
		}
	case "redis", "postgres":
	default:
		return fmt.Errorf("storage.driver %q is not one of file, redis, postgres", s.Driver)
	}
	return nil
}

type Postgres struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	User       string        `mapstructure:"user"`
	Password   string        `mapstructure:"password"`
	DBName     string        `mapstructure:"dbname"`
	SSLMode    string        `mapstructure:"sslmode"`
	MaxConns   int32         `mapstructure:"max_conns"`
	MinConns   int32         `mapstructure:"min_conns"`
	ConnLife   time.Duration `mapstructure:"conn_life"`
	HealthPing time.Duration `mapstructure:"health_ping"`
}

func (p *Postgres) DSN() string {
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, ssl,
	)
}

func (p *Postgres) Validate() error {
	if p.Host == "" {
		return errors.New("postgres.host is required")
	}
	if p.Port == 0 {
		return errors.New("postgres.port is required")
	}
	if p.User == "" {
		return errors.New("postgres.user is required")
	}
	if p.DBName == "" {
		return errors.New("postgres.dbname is required")
	}
	return nil
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *Redis) Validate() error {
	if r == nil {
		return errors.New("redis config is nil")
	}
	if r.Addr == "" {
		return errors.New("redis.addr is required")
	}
	return nil
}

// Events configures the optional contact-change publisher.
// Empty brokers disables publishing entirely.
type Events struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

func (e *Events) Enabled() bool { return e != nil && len(e.Brokers) > 0 }

func (e *Events) Validate() error {
	if !e.Enabled() {
		return nil
	}
	if e.Topic == "" {
		return errors.New("events.topic is required when brokers are set")
	}
	return nil
}

// Auth guards contact mutations over HTTP. Empty passphrase hash
// leaves the API open, which is fine for a loopback deployment.
type Auth struct {
	PassphraseHash string        `mapstructure:"passphrase_hash"` // bcrypt
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	Issuer         string        `mapstructure:"issuer"`
}

func (a *Auth) Enabled() bool { return a != nil && a.PassphraseHash != "" }

func (a *Auth) Validate() error {
	if !a.Enabled() {
		return nil
	}
	if a.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required when a passphrase hash is set")
	}
	return nil
}

type Metrics struct {
	Addr string `mapstructure:"addr"`
}

type Logger struct {
	Level   string `mapstructure:"level"`
	JSON    bool   `mapstructure:"json"`
	AppName string `mapstructure:"app_name"`
}
