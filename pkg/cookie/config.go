package cookie

import (
	"net/http"
)

// Config holds the default attributes for cookies written through the bridge.
type Config struct {
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode
}

// DefaultConfig returns default cookie configuration
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Options converts the non-zero config values into cookie options.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 6)

	if c.Path != "" {
		opts = append(opts, WithPath(c.Path))
	}
	if c.Domain != "" {
		opts = append(opts, WithDomain(c.Domain))
	}
	if c.MaxAge != 0 {
		opts = append(opts, WithMaxAge(c.MaxAge))
	}
	if c.Secure {
		opts = append(opts, WithSecure(c.Secure))
	}
	opts = append(opts, WithHTTPOnly(c.HttpOnly))
	if c.SameSite != 0 {
		opts = append(opts, WithSameSite(c.SameSite))
	}

	return opts
}

// NewFromConfig returns a Middleware whose cookie defaults come from cfg.
// Additional options are applied after the config values.
func NewFromConfig(cfg Config, opts ...Option) func(http.Handler) http.Handler {
	return Middleware(append(cfg.Options(), opts...)...)
}
