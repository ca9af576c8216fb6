// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every config type is
// parsed once and cached for the lifetime of the process:
//
//	type Config struct {
//	    API    apiclient.Config `envPrefix:"FORMGUARD_API_"`
//	    Log    logger.Config
//	    Locale string `env:"FORMGUARD_LOCALE" envDefault:"en"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// LoadEnv reads additional .env files before the first Load. ResetCache
// clears the cache between tests.
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer and can be
// matched with errors.Is.
package config
