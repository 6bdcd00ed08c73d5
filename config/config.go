package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultGatewayCheckoutURL = "https://sandbox.payhere.lk/pay/checkout"

type Config struct {
	Server    ServerConfig
	Merchant  MerchantConfig
	Backend   BackendConfig
	Gateway   GatewayConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Port            string        `yaml:"port"             env:"PORT"             env-default:"8099"        validate:"required"`
	Env             string        `yaml:"env"              env:"ENV"              env-default:"development" validate:"oneof=development staging production"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MerchantConfig seeds the merchant-side defaults of every new checkout.
type MerchantConfig struct {
	ID        string `yaml:"id"         env:"MERCHANT_ID"  validate:"required"`
	BaseURL   string `yaml:"base_url"   env:"APP_BASE_URL" validate:"required,url"`
	NotifyURL string `yaml:"notify_url" env:"NOTIFY_URL"   validate:"required,url"`
}

// BackendConfig points at the trusted service that signs orders.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout"  env:"BACKEND_TIMEOUT"  env-default:"15s" validate:"gt=0"`
}

type GatewayConfig struct {
	CheckoutURL string `yaml:"checkout_url" env:"GATEWAY_CHECKOUT_URL" validate:"required,url"`
}

type SessionConfig struct {
	Secret string        `yaml:"secret" env:"SESSION_SECRET" validate:"required"`
	TTL    time.Duration `yaml:"ttl"    env:"SESSION_TTL"    env-default:"30m" validate:"gt=0"`
	Issuer string        `yaml:"issuer" env:"SESSION_ISSUER" env-default:"payhere-checkout"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"100" validate:"min=1"`
	Window   time.Duration `yaml:"window"   env:"RATE_LIMIT_WINDOW"   env-default:"60s" validate:"gt=0"`
}

type LoggerConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
}

// Load reads the config from CONFIG_PATH when set, otherwise from the environment.
func Load() (*Config, error) {
	const op = "config.Load"

	var cfg Config
	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read config: %w", op, err)
	}
	if cfg.Gateway.CheckoutURL == "" {
		cfg.Gateway.CheckoutURL = DefaultGatewayCheckoutURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, ve := range validationErrs {
				msgs = append(msgs, fmt.Sprintf("%s=%v must satisfy '%s'", ve.Namespace(), ve.Value(), ve.Tag()))
			}
			return fmt.Errorf("config validation: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
