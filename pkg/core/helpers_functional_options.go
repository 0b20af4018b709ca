package core

import "time"

func WithRedisAddr(addr string) func(*Config) {
	return func(c *Config) {
		c.Redis.Addr = addr
	}
}

func WithRedisPassword(pw string) func(*Config) {
	return func(c *Config) {
		c.Redis.Password = pw
	}
}

func WithRedisDB(db int) func(*Config) {
	return func(c *Config) {
		c.Redis.DB = db
	}
}

func WithEnvironment(environment string) func(*Config) {
	return func(c *Config) {
		c.Environment = environment
	}
}

func WithPort(port int) func(*Config) {
	return func(c *Config) {
		c.Port = port
	}
}

func WithSkipAuth(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.SkipAuth = val
	}
}

func WithOtlpEndpoint(endpoint string) func(*Config) {
	return func(c *Config) {
		c.Otel.OtlpExporter.Endpoint = endpoint
	}
}

func WithOtelDisable(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.Otel.Disable = val
	}
}

func WithUpdateURL(url string) func(*Config) {
	return func(c *Config) {
		c.UpdateAPI.URL = url
	}
}

func WithUpdateTimeout(timeout time.Duration) func(*Config) {
	return func(c *Config) {
		c.UpdateAPI.Timeout = timeout
	}
}

func WithCatalogDatabaseURL(url string) func(*Config) {
	return func(c *Config) {
		c.Catalog.DatabaseURL = url
	}
}

func WithGatePersonalStep(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.Form.GatePersonalStep = val
	}
}

func WithRedirect(path string, delay time.Duration) func(*Config) {
	return func(c *Config) {
		c.Form.RedirectPath = path
		c.Form.RedirectDelay = delay
	}
}

func WithCognitoRequiredGroup(group string) func(*Config) {
	return func(c *Config) {
		c.Cognito.RequiredGroup = group
	}
}

func WithLogLevel(level string) func(*Config) {
	return func(c *Config) {
		c.LogLevel = level
	}
}
