package core

import "time"

type Config struct {
	Cognito     CognitoConfig
	Environment string `env:"ENVIRONMENT"`
	Otel        OtelConfig
	Port        int  `env:"PORT"`
	SkipAuth    bool `env:"SKIP_AUTH"`
	// debug, info, warn or error.
	LogLevel  string `env:"LOG_LEVEL"`
	Redis     RedisConfig
	UpdateAPI UpdateAPIConfig
	Catalog   CatalogConfig
	Form      FormConfig
}

type OtlpConfig struct {
	Endpoint string `env:"OTEL_OTLP_EXPORTER_ENDPOINT"`
	Insecure bool   `env:"OTEL_OTLP_EXPORTER_INSECURE"`
}

type OtelConfig struct {
	OtlpExporter OtlpConfig
	Disable      bool `env:"OTEL_DISABLE"`
	// "otlp" ships to the collector, "stdout" pretty prints locally.
	Exporter string `env:"OTEL_EXPORTER"`
}

type CognitoConfig struct {
	Region      string `env:"COGNITO_REGION"`
	UserPoolID  string `env:"COGNITO_USER_POOL_ID"`
	AppClientID string `env:"COGNITO_APP_CLIENT_ID"`
	// Optional cognito group a caller must belong to, e.g. "admins".
	RequiredGroup string `env:"COGNITO_REQUIRED_GROUP"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

// UpdateAPIConfig describes the dashboard backend that receives the edited
// candidate record.
type UpdateAPIConfig struct {
	// Base URL, the candidate id is appended as the last path segment.
	URL     string        `env:"UPDATE_CANDIDATE_API_URL"`
	Timeout time.Duration `env:"UPDATE_CANDIDATE_TIMEOUT"`

	// Client credentials are optional. When TokenURL is empty requests are
	// sent without an Authorization header.
	TokenURL     string   `env:"UPDATE_CANDIDATE_TOKEN_URL"`
	ClientID     string   `env:"UPDATE_CANDIDATE_CLIENT_ID"`
	ClientSecret string   `env:"UPDATE_CANDIDATE_CLIENT_SECRET"`
	Scopes       []string `env:"UPDATE_CANDIDATE_SCOPES" envSeparator:","`
}

type CatalogConfig struct {
	DatabaseURL string `env:"CATALOG_DATABASE_URL"`
}

type FormConfig struct {
	SessionTTL       time.Duration `env:"FORM_SESSION_TTL"`
	GatePersonalStep bool          `env:"FORM_GATE_PERSONAL_STEP"`
	RedirectPath     string        `env:"FORM_REDIRECT_PATH"`
	RedirectDelay    time.Duration `env:"FORM_REDIRECT_DELAY"`
	NotificationTTL  time.Duration `env:"FORM_NOTIFICATION_TTL"`
}
