package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultConfigEnvironment = "development"
	defaultConfigPort        = 8000
	defaultSkipAuth          = false
	defaultLogLevel          = "info"

	defaultOtelDisable          = false
	defaultOtelExporter         = "otlp"
	defaultOTLPExporterEndpoint = "localhost:4317"
	defaultOTLPInsecure         = false

	defaultCognitoRegion      = "us-east-1"
	defaultCognitoUserPoolID  = "UNSET"
	defaultCognitoAppClientID = "UNSET"

	defaultRedisAddr     = ""
	defaultRedisPassword = ""
	defaultRedisDB       = 0

	defaultUpdateAPIURL     = "http://localhost:5000/api/candidates"
	defaultUpdateAPITimeout = 10 * time.Second

	defaultFormSessionTTL      = 2 * time.Hour
	defaultFormRedirectPath    = "/dashboard/candidates"
	defaultFormRedirectDelay   = 800 * time.Millisecond
	defaultFormNotificationTTL = 4 * time.Second
)

func DefaultConfig() Config {
	return Config{
		Environment: defaultConfigEnvironment,
		Port:        defaultConfigPort,
		SkipAuth:    defaultSkipAuth,
		LogLevel:    defaultLogLevel,
		Otel: OtelConfig{
			Disable:  defaultOtelDisable,
			Exporter: defaultOtelExporter,
			OtlpExporter: OtlpConfig{
				Endpoint: defaultOTLPExporterEndpoint,
				Insecure: defaultOTLPInsecure,
			},
		},
		Cognito: CognitoConfig{
			Region:      defaultCognitoRegion,
			UserPoolID:  defaultCognitoUserPoolID,
			AppClientID: defaultCognitoAppClientID,
		},
		Redis: RedisConfig{
			Addr:     defaultRedisAddr,
			Password: defaultRedisPassword,
			DB:       defaultRedisDB,
		},
		UpdateAPI: UpdateAPIConfig{
			URL:     defaultUpdateAPIURL,
			Timeout: defaultUpdateAPITimeout,
		},
		Form: FormConfig{
			SessionTTL:      defaultFormSessionTTL,
			RedirectPath:    defaultFormRedirectPath,
			RedirectDelay:   defaultFormRedirectDelay,
			NotificationTTL: defaultFormNotificationTTL,
		},
	}
}

func NewConfig(options ...func(*Config)) Config {
	config := DefaultConfig()
	for _, opt := range options {
		opt(&config)
	}
	return config
}

// NewConfigFromEnv starts from DefaultConfig and overrides every field whose
// env key is set. Unset keys keep their defaults.
func NewConfigFromEnv(options ...func(*Config)) (Config, error) {
	config := DefaultConfig()

	var errs error
	err := env.Parse(&config)
	if err != nil {
		errs = fmt.Errorf("error parsing env: %w", err)
	}

	for _, opt := range options {
		opt(&config)
	}

	return config, errs
}

func LoadEnv(environment ...string) error {
	filenames := []string{
		".env.local",
		".env",
	}

	env := getEnv("ENVIRONMENT", DefaultConfig().Environment)
	if len(environment) > 0 {
		env = environment[0]
	}

	if env != "" {
		file := ".env." + env + ".local"
		filenames = append([]string{file}, filenames...)
	}

	var errs error

	for _, filename := range filenames {
		err := loadEnvFile(filename)
		if err != nil {
			errs = errors.Join(
				errs,
				fmt.Errorf("error loading %s: %w", filename, err),
			)
		}
	}

	return errs
}
