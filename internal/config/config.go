package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application settings sourced from environment variables
// (optionally preloaded from a .env file).
type Config struct {
	AppName string `mapstructure:"APP_NAME"`
	Env     string `mapstructure:"APP_ENV"`
	Port    string `mapstructure:"APP_PORT"`

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN    string `mapstructure:"DATABASE_DSN"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	// An empty RabbitMQURL disables event publishing.
	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	RabbitMQQueue string `mapstructure:"RABBITMQ_QUEUE"`

	// RabbitMQConsume logs every event from RabbitMQQueue in-process. Leave it
	// off when another service consumes the queue.
	RabbitMQConsume bool `mapstructure:"RABBITMQ_CONSUME"`
}

// DevJWTSecret is the development-only signing secret used when JWT_SECRET is unset.
const DevJWTSecret = "secret"

var keys = []string{
	"APP_NAME", "APP_ENV", "APP_PORT",
	"DATABASE_DRIVER", "DATABASE_DSN",
	"JWT_SECRET", "JWT_TTL",
	"RABBITMQ_URL", "RABBITMQ_QUEUE", "RABBITMQ_CONSUME",
}

// Load reads configuration from the environment. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "devconnector")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=devconnector port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("JWT_TTL", time.Hour)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "profile_events")
	v.SetDefault("RABBITMQ_CONSUME", false)
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}
	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case c.JWTSecret == DevJWTSecret && c.Env != "development":
		errs = append(errs, fmt.Errorf("JWT_SECRET must be changed from the development default when APP_ENV is %q", c.Env))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	return errors.Join(errs...)
}
