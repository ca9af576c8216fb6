package apiclient

import "time"

// Config holds the backend connection settings.
// Typically loaded with config.Load under the FORMGUARD_API_ prefix.
type Config struct {
	BaseURL   string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Prefix    string        `env:"PREFIX" envDefault:"/api/internal/"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"15s"`
	UserAgent string        `env:"USER_AGENT" envDefault:"formguard/1.0"`
	Token     string        `env:"TOKEN"`

	BreakerThreshold int           `env:"BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"BREAKER_COOLDOWN" envDefault:"30s"`
}
