package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"noaa-sdk/pkg/noaa"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	App          AppConfig          `yaml:"app"`
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Sentry       SentryConfig       `yaml:"sentry"`
	NOAA         NOAAConfig         `yaml:"noaa"`
	NCDC         NCDCConfig         `yaml:"ncdc"`
	Observations ObservationsConfig `yaml:"observations"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME" validate:"required"`
	Version string `yaml:"version" envconfig:"VERSION" validate:"required"`
	Env     string `yaml:"env" envconfig:"ENV" validate:"required"`
}

type ServerConfig struct {
	Port         string        `yaml:"port" envconfig:"PORT" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

type NOAAConfig struct {
	Host      string        `yaml:"host" envconfig:"HOST" validate:"required,hostname_port|hostname"`
	UserAgent string        `yaml:"user_agent" envconfig:"USER_AGENT" validate:"required"`
	Accept    string        `yaml:"accept" envconfig:"ACCEPT" validate:"accept"`
	Verbose   bool          `yaml:"verbose" envconfig:"VERBOSE"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	Retries   int           `yaml:"retries" envconfig:"RETRIES" validate:"min=0,max=10"`
	Breaker   BreakerConfig `yaml:"breaker"`
}

type BreakerConfig struct {
	Enabled     bool          `yaml:"enabled" envconfig:"ENABLED"`
	Failures    uint32        `yaml:"failures" envconfig:"FAILURES" validate:"required_if=Enabled true"`
	OpenTimeout time.Duration `yaml:"open_timeout" envconfig:"OPEN_TIMEOUT"`
}

type NCDCConfig struct {
	Token string `yaml:"token" envconfig:"TOKEN"`
}

type ObservationsConfig struct {
	// MaxRecords caps how many observations one API response carries.
	MaxRecords int `yaml:"max_records" envconfig:"MAX_RECORDS" validate:"min=1"`
	// Stations is the default number of nearest stations read.
	Stations int `yaml:"stations" envconfig:"STATIONS"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "noaa-api",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  120 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		NOAA: NOAAConfig{
			Host:      noaa.DefaultHost,
			UserAgent: noaa.DefaultUserAgent,
			Accept:    string(noaa.DefaultAccept),
			Timeout:   30 * time.Second,
			Retries:   5,
			Breaker: BreakerConfig{
				Failures:    5,
				OpenTimeout: 30 * time.Second,
			},
		},
		Observations: ObservationsConfig{
			MaxRecords: 500,
			Stations:   1,
		},
	}
}

// NewConfig layers the defaults, the .env files (".env" when none are given),
// the YAML file at path and the environment, then validates. Missing files
// are skipped.
func NewConfig(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "load %s", f)
		}
	}

	cfg := Default()

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "error environment variable parsing")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "failed to parse YAML config %s", path)
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("accept", func(fl validator.FieldLevel) bool {
		return noaa.Accept(fl.Field().String()).Valid()
	})

	return v
}

// Validate reports every invalid field as "<yaml path> <problem>".
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate config")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "accept":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %v", field, noaa.Accepts()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		}
	}

	return errors.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
