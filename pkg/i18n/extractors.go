package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// LangExtractor picks a language code out of an incoming request.
type LangExtractor func(r *http.Request) string

// maxLangCodeLength follows the RFC 5646 recommendation.
const maxLangCodeLength = 35

// ExtractorConfig lists where DefaultLangExtractor looks for a language.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

type ExtractorOption func(*ExtractorConfig)

func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts extracted codes to langs.
// A regional code (de-at) is reduced to its supported base (de).
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks, in order: the "lang" cookie, the "lang" query
// parameter, the Language header and the Accept-Language header.
// The first usable code wins.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	supported := make([]string, len(cfg.SupportedLangs))
	for i, lang := range cfg.SupportedLangs {
		supported[i] = strings.ToLower(lang)
	}

	normalize := func(lang string) string {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" || len(lang) > maxLangCodeLength {
			return ""
		}
		if len(supported) == 0 || slices.Contains(supported, lang) {
			return lang
		}
		if base, _, ok := strings.Cut(lang, "-"); ok && slices.Contains(supported, base) {
			return base
		}
		return ""
	}

	return func(r *http.Request) string {
		if cfg.CookieName != "" {
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				if lang := normalize(c.Value); lang != "" {
					return lang
				}
			}
		}

		if cfg.QueryParamName != "" {
			if lang := normalize(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
				return lang
			}
		}

		if lang := normalize(r.Header.Get("Language")); lang != "" {
			return lang
		}

		if accept := r.Header.Get("Accept-Language"); accept != "" {
			if len(supported) > 0 {
				return ParseAcceptLanguage(accept, supported, "")
			}
			return firstAcceptedLanguage(accept)
		}

		return ""
	}
}
